// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/pairing"
)

// Format selects the output encoding.
type Format int

const (
	Text Format = iota
	JSON
	YAML
	CBOR
)

var formatNames = map[Format]string{
	Text: "text",
	JSON: "json",
	YAML: "yaml",
	CBOR: "cbor",
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}

	return "unknown"
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if name == strings.ToLower(s) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("report: unknown format %q", s)
}

// encMode encodes CBOR with Core Deterministic Encoding (RFC 8949 §4.2).
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
}

// Document is the structured form of a result.
type Document struct {
	Engine          string  `json:"engine" yaml:"engine" cbor:"engine"`
	Participants    int     `json:"participants" yaml:"participants" cbor:"participants"`
	Total           float64 `json:"total" yaml:"total" cbor:"total"`
	Stable          bool    `json:"stable" yaml:"stable" cbor:"stable"`
	FallbackReason  string  `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty" cbor:"fallback_reason,omitempty"`
	TrioEvaluations int     `json:"trio_evaluations,omitempty" yaml:"trio_evaluations,omitempty" cbor:"trio_evaluations,omitempty"`
	Groups          []Group `json:"groups" yaml:"groups" cbor:"groups"`

	// Set by the stable-merge engine only.
	Leftover      []int   `json:"leftover,omitempty" yaml:"leftover,flow,omitempty" cbor:"leftover,omitempty"`
	BaselineTotal float64 `json:"baseline_total,omitempty" yaml:"baseline_total,omitempty" cbor:"baseline_total,omitempty"`
}

// Group is one pair or trio with display names and internal weight.
type Group struct {
	Members []int    `json:"members" yaml:"members,flow" cbor:"members"`
	Names   []string `json:"names" yaml:"names,flow" cbor:"names"`
	Weight  float64  `json:"weight" yaml:"weight" cbor:"weight"`
}

// NewDocument builds the Document of res on g. The trio, if any, is listed
// first, matching the text form.
func NewDocument(g *affinity.Graph, res pairing.Result) Document {
	doc := Document{
		Engine:          res.Engine.String(),
		Participants:    g.N(),
		Total:           res.Total,
		Stable:          res.Stable,
		FallbackReason:  res.FallbackReason,
		TrioEvaluations: res.TrioEvaluations,
		Groups:          make([]Group, 0, len(res.Matching.Groups)),
		Leftover:        res.Leftover,
	}
	if res.Engine == pairing.StableMerge {
		doc.BaselineTotal = res.BaselineTotal
	}
	for _, grp := range ordered(res.Matching) {
		names := make([]string, len(grp))
		for i, v := range grp {
			names[i] = g.Participant(v).Name
		}
		doc.Groups = append(doc.Groups, Group{
			Members: append([]int(nil), grp...),
			Names:   names,
			Weight:  affinity.GroupWeight(g, grp),
		})
	}

	return doc
}

// ordered puts the trio first and keeps the Matching order otherwise.
func ordered(m affinity.Matching) []affinity.Group {
	out := make([]affinity.Group, 0, len(m.Groups))
	if t, ok := m.Trio(); ok {
		out = append(out, t)
	}

	return append(out, m.Pairs()...)
}

// Render writes res in format f.
func Render(w io.Writer, f Format, g *affinity.Graph, res pairing.Result) error {
	switch f {
	case Text:
		return WriteText(w, g, res)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(g, res))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(g, res)); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case CBOR:
		data, err := encMode.Marshal(NewDocument(g, res))
		if err != nil {
			return fmt.Errorf("encoding cbor report: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("report: unsupported format %d", int(f))
	}
}

// WriteText writes one line per group: the trio first, then the pairs.
func WriteText(w io.Writer, g *affinity.Graph, res pairing.Result) error {
	for _, grp := range ordered(res.Matching) {
		if _, err := fmt.Fprintln(w, Line(g, grp)); err != nil {
			return err
		}
	}

	return nil
}

// Line phrases a single group.
func Line(g *affinity.Graph, grp affinity.Group) string {
	name := func(v int) string { return g.Participant(v).Name }
	switch len(grp) {
	case 2:
		return fmt.Sprintf("%s and %s will pair", name(grp[0]), name(grp[1]))
	case 3:
		return fmt.Sprintf("%s, %s, and %s will form a group of 3", name(grp[0]), name(grp[1]), name(grp[2]))
	default:
		names := make([]string, len(grp))
		for i, v := range grp {
			names[i] = name(v)
		}
		return strings.Join(names, ", ") + fmt.Sprintf(" will form a group of %d", len(grp))
	}
}

// Decode reads a CBOR document written by Render.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding cbor report: %w", err)
	}

	return doc, nil
}
