// SPDX-License-Identifier: MIT

package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pairmatch/affinity"
)

// ErrFormat is wrapped by every parse failure of this package.
var ErrFormat = errors.New("ingest: malformed input")

// ParseEdgesJSONC parses [[a, b, w], ...] with comments allowed.
func ParseEdgesJSONC(data []byte) ([]affinity.Edge, error) {
	var rows [][]float64
	if err := json.Unmarshal(jsonc.ToJSON(data), &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return triples(rows)
}

// ParseEdgesYAML parses a YAML sequence of [a, b, w] triples.
func ParseEdgesYAML(data []byte) ([]affinity.Edge, error) {
	var rows [][]float64
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return triples(rows)
}

func triples(rows [][]float64) ([]affinity.Edge, error) {
	edges := make([]affinity.Edge, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: edge %d has %d fields, want 3", ErrFormat, i, len(row))
		}
		a, okA := index(row[0])
		b, okB := index(row[1])
		if !okA || !okB {
			return nil, fmt.Errorf("%w: edge %d: participant ids must be non-negative integers", ErrFormat, i)
		}
		edges = append(edges, affinity.Edge{A: a, B: b, Weight: row[2]})
	}

	return edges, nil
}

func index(f float64) (int, bool) {
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

// CountParticipants returns 1 + the largest id in edges (0 for none).
func CountParticipants(edges []affinity.Edge) int {
	n := 0
	for _, e := range edges {
		n = max(n, e.A+1, e.B+1)
	}

	return n
}

// ReadEdgesFile reads an edge file, choosing the parser by extension:
// .yaml and .yml are YAML, everything else JSONC.
func ReadEdgesFile(path string) ([]affinity.Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var edges []affinity.Edge
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		edges, err = ParseEdgesYAML(data)
	default:
		edges, err = ParseEdgesJSONC(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return edges, nil
}

// Matrix is a parsed rating sheet.
type Matrix struct {
	Names   []string
	Ratings affinity.Ratings
}

// ReadRatings parses a CSV rating matrix:
//
//	name,Ada,Alan,Grace
//	Ada,,5,3
//	Alan,4,,1
//	Grace,2,5,
//
// Row order must match column order; a mismatch usually means the sheet was
// sorted after export and is rejected.
func ReadRatings(r io.Reader) (Matrix, error) {
	records, err := readCSV(r)
	if err != nil {
		return Matrix{}, err
	}
	if len(records) == 0 {
		return Matrix{}, fmt.Errorf("%w: empty rating sheet", ErrFormat)
	}

	names := trimAll(records[0][1:])
	n := len(names)
	if len(records)-1 != n {
		return Matrix{}, fmt.Errorf("%w: %d names in header but %d rating rows", ErrFormat, n, len(records)-1)
	}

	ratings := make(affinity.Ratings, n)
	var i, j int
	for i = 0; i < n; i++ {
		rec := records[i+1]
		if len(rec) != n+1 {
			return Matrix{}, fmt.Errorf("%w: line %d has %d cells, want %d", ErrFormat, i+2, len(rec), n+1)
		}
		if got := strings.TrimSpace(rec[0]); got != names[i] {
			return Matrix{}, fmt.Errorf("%w: line %d is %q but column %d is %q", ErrFormat, i+2, got, i+1, names[i])
		}
		ratings[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			cell := strings.TrimSpace(rec[j+1])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return Matrix{}, fmt.Errorf("%w: line %d column %d: %q is not a finite number", ErrFormat, i+2, j+2, cell)
			}
			if i != j {
				ratings[i][j] = v
			}
		}
	}

	return Matrix{Names: names, Ratings: ratings}, nil
}

// ReadRatingsFile is ReadRatings on a file.
func ReadRatingsFile(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	m, err := ReadRatings(f)
	if err != nil {
		return Matrix{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Participants returns one Participant per name, without requests.
func (m Matrix) Participants() []affinity.Participant {
	out := make([]affinity.Participant, len(m.Names))
	for i, name := range m.Names {
		out[i] = affinity.Participant{ID: i, Name: name}
	}

	return out
}

// ReadRoster parses a CSV roster with a "name,request" header. Extra
// columns are ignored; the request column is optional.
func ReadRoster(r io.Reader) ([]affinity.Participant, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrFormat)
	}

	nameCol, reqCol := -1, -1
	for c, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = c
		case "request":
			reqCol = c
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: roster header has no name column", ErrFormat)
	}

	out := make([]affinity.Participant, 0, len(records)-1)
	for i, rec := range records[1:] {
		p := affinity.Participant{ID: i}
		if nameCol < len(rec) {
			p.Name = strings.TrimSpace(rec[nameCol])
		}
		if p.Name == "" {
			return nil, fmt.Errorf("%w: line %d has no name", ErrFormat, i+2)
		}
		if reqCol >= 0 && reqCol < len(rec) {
			p.Request = strings.TrimSpace(rec[reqCol])
		}
		out = append(out, p)
	}

	return out, nil
}

// ReadRosterFile is ReadRoster on a file.
func ReadRosterFile(path string) ([]affinity.Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	ps, err := ReadRoster(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ps, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return records, nil
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}

	return out
}
