package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairmatch/internal/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const workedJSONC = `// weights from this week's ratings
[
  [0, 1, 93], [0, 2, -20], [0, 3, 2],
  [1, 2, -13], [1, 3, 10],
  [2, 3, 80], // trailing comma allowed
]`

const roster = `name,request
Ada,help with proofs
Alan,review my parser
Grace,compiler bug
Linus,merge conflict
`

func TestRun_TextReport(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "weights.jsonc", workedJSONC)
	names := writeFile(t, dir, "roster.csv", roster)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--edges", edges, "--roster", names}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Equal(t, "Ada and Alan will pair\nGrace and Linus will pair\n", stdout.String())
	require.Contains(t, stderr.String(), "partition ready")
}

func TestRun_RatingsJSON(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "ratings.csv", `name,Ada,Alan,Grace
Ada,,5,1
Alan,4,,2
Grace,3,3,
`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--ratings", sheet, "--format", "json", "--engine", "stable-fallback"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var doc report.Document
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Equal(t, "max-weight", doc.Engine)
	require.Equal(t, "odd participant count", doc.FallbackReason)
	require.Len(t, doc.Groups, 1)
	require.Equal(t, []string{"Ada", "Alan", "Grace"}, doc.Groups[0].Names)
	require.InDelta(t, 18.0, doc.Total, 1e-9)
}

func TestRun_StableMergeJSON(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "ratings.csv", `name,A,B,C,D,E,F
A,,5,4,3,2,1
B,4,,5,3,2,1
C,5,4,,3,2,1
D,5,4,3,,2,1
E,4,3,2,1,,5
F,4,3,2,1,5,
`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", sheet, "--engine", "stable-merge", "-f", "json"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Contains(t, stderr.String(), "stable pass incomplete")

	var doc report.Document
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Equal(t, "stable-merge", doc.Engine)
	require.Equal(t, []int{0, 3}, doc.Leftover)
	require.InDelta(t, 27.0, doc.BaselineTotal, 1e-9)
	require.Len(t, doc.Groups, 3)
	require.Equal(t, []string{"E", "F"}, doc.Groups[2].Names)
}

func TestRun_ConfigFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "weights.yaml", "- [0, 1, 5]\n- [2, 3, 4]\n")
	cfg := writeFile(t, dir, "pairmatch.yaml", "missing_weight: 0\noutput:\n  format: yaml\n")
	out := filepath.Join(dir, "report.txt")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-c", cfg, "-e", edges, "-f", "text", "-o", out}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "0 and 1 will pair\n2 and 3 will pair\n", string(data))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "weights.jsonc", workedJSONC)
	partial := writeFile(t, dir, "partial.jsonc", `[[0, 1, 1], [2, 3, 1]]`)
	badCfg := writeFile(t, dir, "bad.yaml", "engine: coin-toss\n")

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"no input", nil, exitUsage},
		{"both inputs", []string{"--edges", edges, "--ratings", edges}, exitUsage},
		{"unknown flag", []string{"--nope"}, exitUsage},
		{"bad engine", []string{"--edges", edges, "--engine", "magic"}, exitUsage},
		{"bad config", []string{"--edges", edges, "--config", badCfg}, exitUsage},
		{"missing pairs", []string{"--edges", partial}, exitUsage},
		{"too large", []string{"--edges", edges, "--max-participants", "2"}, exitSolve},
		{"bad log level", []string{"--edges", edges, "--log-level", "loud"}, exitUsage},
		{"help", []string{"--help"}, exitOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.Equal(t, tc.code, run(tc.args, &stdout, &stderr), stderr.String())
		})
	}
}
