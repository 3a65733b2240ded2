// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/internal/config"
	"github.com/katalvlaran/pairmatch/internal/ingest"
	"github.com/katalvlaran/pairmatch/pairing"
)

// input is a loaded session: the graph used for reporting and, for rating
// sheets, the directed ratings the stable engines rank by.
type input struct {
	source  string
	graph   *affinity.Graph
	ratings affinity.Ratings
	combine affinity.Combine
}

func (in *input) solve(opts ...pairing.Option) (pairing.Result, error) {
	if in.ratings != nil {
		return pairing.SolveRatings(in.ratings, in.combine, opts...)
	}

	return pairing.Solve(in.graph, opts...)
}

func load(f *flags, cfg *config.Config) (*input, error) {
	switch {
	case f.edgesPath != "" && f.ratings != "":
		return nil, usageError("--edges and --ratings are mutually exclusive")
	case f.edgesPath == "" && f.ratings == "":
		return nil, usageError("one of --edges or --ratings is required")
	}

	var roster []affinity.Participant
	if f.roster != "" {
		var err error
		if roster, err = ingest.ReadRosterFile(f.roster); err != nil {
			return nil, err
		}
	}

	if f.edgesPath != "" {
		return loadEdges(f.edgesPath, roster, cfg)
	}

	return loadRatings(f.ratings, roster, cfg)
}

func loadEdges(path string, roster []affinity.Participant, cfg *config.Config) (*input, error) {
	edges, err := ingest.ReadEdgesFile(path)
	if err != nil {
		return nil, err
	}

	n := ingest.CountParticipants(edges)
	var opts []affinity.Option
	if roster != nil {
		if len(roster) < n {
			return nil, usageError("roster lists %d participants but %s uses %d", len(roster), path, n)
		}
		n = len(roster)
		opts = append(opts, affinity.WithParticipants(roster))
	}
	if cfg.MissingWeight != nil {
		opts = append(opts, affinity.WithMissingWeight(*cfg.MissingWeight))
	}

	g, err := affinity.NewGraph(n, edges, opts...)
	if err != nil {
		return nil, err
	}

	return &input{source: path, graph: g}, nil
}

func loadRatings(path string, roster []affinity.Participant, cfg *config.Config) (*input, error) {
	m, err := ingest.ReadRatingsFile(path)
	if err != nil {
		return nil, err
	}
	combine, err := cfg.Combiner()
	if err != nil {
		return nil, err
	}

	ps := m.Participants()
	if roster != nil {
		if len(roster) != len(ps) {
			return nil, usageError("roster lists %d participants but %s rates %d", len(roster), path, len(ps))
		}
		ps = roster
	}

	g, err := affinity.FromRatings(m.Ratings, combine, affinity.WithParticipants(ps))
	if err != nil {
		return nil, err
	}

	return &input{source: path, graph: g, ratings: m.Ratings, combine: combine}, nil
}
