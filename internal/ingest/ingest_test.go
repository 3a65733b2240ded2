package ingest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/internal/ingest"
)

func TestParseEdgesJSONC(t *testing.T) {
	edges, err := ingest.ParseEdgesJSONC([]byte(`
/* week 12 */
[
  [0, 1, 93],   // Ada, Alan
  [1, 2, -13.5],
]`))
	require.NoError(t, err)
	require.Equal(t, []affinity.Edge{{A: 0, B: 1, Weight: 93}, {A: 1, B: 2, Weight: -13.5}}, edges)
	require.Equal(t, 3, ingest.CountParticipants(edges))
	require.Zero(t, ingest.CountParticipants(nil))
}

func TestParseEdgesYAML(t *testing.T) {
	edges, err := ingest.ParseEdgesYAML([]byte("# week 12\n- [0, 1, 93]\n- [3, 2, 80]\n"))
	require.NoError(t, err)
	require.Equal(t, []affinity.Edge{{A: 0, B: 1, Weight: 93}, {A: 3, B: 2, Weight: 80}}, edges)
	require.Equal(t, 4, ingest.CountParticipants(edges))
}

func TestParseEdges_Malformed(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		`[[0, 1]]`,
		`[[0, 1, 2, 3]]`,
		`[[-1, 1, 2]]`,
		`[[0.5, 1, 2]]`,
	}
	for _, in := range inputs {
		_, err := ingest.ParseEdgesJSONC([]byte(in))
		require.ErrorIs(t, err, ingest.ErrFormat, in)
	}

	_, err := ingest.ParseEdgesYAML([]byte("- [0, 1]\n"))
	require.ErrorIs(t, err, ingest.ErrFormat)
	_, err = ingest.ParseEdgesYAML([]byte("edges: {"))
	require.ErrorIs(t, err, ingest.ErrFormat)
}

func TestReadEdgesFile(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "w.YML")
	require.NoError(t, os.WriteFile(yml, []byte("- [0, 1, 2]\n"), 0o644))
	jsonc := filepath.Join(dir, "w.jsonc")
	require.NoError(t, os.WriteFile(jsonc, []byte("[[0, 1, 2],] // done"), 0o644))

	for _, path := range []string{yml, jsonc} {
		edges, err := ingest.ReadEdgesFile(path)
		require.NoError(t, err, path)
		require.Equal(t, []affinity.Edge{{A: 0, B: 1, Weight: 2}}, edges)
	}

	_, err := ingest.ReadEdgesFile(filepath.Join(dir, "absent.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRatings(t *testing.T) {
	m, err := ingest.ReadRatings(strings.NewReader(`name, Ada, Alan, Grace
Ada, 7, 5, 3
Alan, 4, , 1
Grace, 2, 5.5,
`))
	require.NoError(t, err)
	require.Equal(t, []string{"Ada", "Alan", "Grace"}, m.Names)
	require.Equal(t, affinity.Ratings{{0, 5, 3}, {4, 0, 1}, {2, 5.5, 0}}, m.Ratings)
	require.Equal(t, []affinity.Participant{{ID: 0, Name: "Ada"}, {ID: 1, Name: "Alan"}, {ID: 2, Name: "Grace"}}, m.Participants())
}

func TestReadRatings_Malformed(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"missing row":   "name,Ada,Alan\nAda,,1\n",
		"short row":     "name,Ada,Alan\nAda,,1\nAlan,2\n",
		"sorted rows":   "name,Ada,Alan\nAlan,2,\nAda,,1\n",
		"not a number":  "name,Ada,Alan\nAda,,lots\nAlan,2,\n",
		"infinite":      "name,Ada,Alan\nAda,,Inf\nAlan,2,\n",
		"bad quoting":   "name,Ada\n\"Ada,,\n",
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ingest.ReadRatings(strings.NewReader(in))
			require.ErrorIs(t, err, ingest.ErrFormat)
		})
	}
}

func TestReadRoster(t *testing.T) {
	ps, err := ingest.ReadRoster(strings.NewReader(`team,Name,Request
red,Ada,"help with proofs, please"
blue,Alan
`))
	require.NoError(t, err)
	require.Equal(t, []affinity.Participant{
		{ID: 0, Name: "Ada", Request: "help with proofs, please"},
		{ID: 1, Name: "Alan"},
	}, ps)

	_, err = ingest.ReadRoster(strings.NewReader("who,request\nAda,x\n"))
	require.ErrorIs(t, err, ingest.ErrFormat)
	_, err = ingest.ReadRoster(strings.NewReader("name,request\n,x\n"))
	require.ErrorIs(t, err, ingest.ErrFormat)
	_, err = ingest.ReadRoster(strings.NewReader(""))
	require.ErrorIs(t, err, ingest.ErrFormat)
}

func TestReadRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nAda\nAlan\n"), 0o644))

	ps, err := ingest.ReadRosterFile(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.Equal(t, "Alan", ps[1].Name)

	_, err = ingest.ReadRatingsFile(path)
	require.ErrorIs(t, err, ingest.ErrFormat)
}
