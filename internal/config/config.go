// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the pairmatch command.
//
// Values start from Default, are overlaid by an optional YAML file and then
// by command-line flags. Validate reports every problem at once.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/internal/report"
	"github.com/katalvlaran/pairmatch/mwmatch"
	"github.com/katalvlaran/pairmatch/pairing"
	"github.com/katalvlaran/pairmatch/roommates"
	"github.com/katalvlaran/pairmatch/trio"
)

// Config is the full run configuration.
type Config struct {
	// Engine is max-weight, stable, stable-fallback or stable-merge.
	Engine string `yaml:"engine"`

	// Algorithm is blossom or exact.
	Algorithm string `yaml:"algorithm"`

	// Resolution is the blossom weight quantum.
	Resolution float64 `yaml:"resolution"`

	// Ties is strict, lower-index or seeded.
	Ties string `yaml:"ties"`
	Seed int64  `yaml:"seed"`

	// Trio is joint or greedy.
	Trio string `yaml:"trio"`

	MaxParticipants int `yaml:"max_participants"`
	MaxEvaluations  int `yaml:"max_evaluations"`

	// Combine folds two directed ratings into one weight: sum, mean or min.
	Combine string `yaml:"combine"`

	// MissingWeight, when set, fills pairs absent from an edge file.
	MissingWeight *float64 `yaml:"missing_weight"`

	Output Output `yaml:"output"`
}

// Output configures the report.
type Output struct {
	// Format is text, json, yaml or cbor.
	Format string `yaml:"format"`

	// Path is the report file; empty means standard output.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine:          pairing.MaxWeight.String(),
		Algorithm:       mwmatch.Blossom.String(),
		Resolution:      mwmatch.DefaultResolution,
		Ties:            roommates.TieStrict.String(),
		Trio:            trio.Joint.String(),
		MaxParticipants: trio.DefaultMaxParticipants,
		Combine:         "sum",
		Output:          Output{Format: report.Text.String()},
	}
}

// LoadFile reads path over Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges a YAML file into c. Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

var combiners = map[string]affinity.Combine{
	"sum":  affinity.CombineSum,
	"mean": affinity.CombineMean,
	"min":  affinity.CombineMin,
}

// Validate checks every field and joins all problems.
func (c *Config) Validate() error {
	var errs []error

	if _, err := pairing.ParseEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if _, err := mwmatch.ParseAlgorithm(c.Algorithm); err != nil {
		errs = append(errs, err)
	}
	if !(c.Resolution > 0) || math.IsInf(c.Resolution, 1) {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %g", c.Resolution))
	}
	if _, err := roommates.ParseTiePolicy(c.Ties); err != nil {
		errs = append(errs, err)
	}
	if _, err := trio.ParseStrategy(c.Trio); err != nil {
		errs = append(errs, err)
	}
	if c.MaxParticipants < 0 {
		errs = append(errs, fmt.Errorf("max_participants must not be negative"))
	}
	if c.MaxEvaluations < 0 {
		errs = append(errs, fmt.Errorf("max_evaluations must not be negative"))
	}
	if w := c.MissingWeight; w != nil && (math.IsNaN(*w) || math.IsInf(*w, 0)) {
		errs = append(errs, fmt.Errorf("missing_weight must be finite"))
	}
	if _, ok := combiners[c.Combine]; !ok {
		errs = append(errs, fmt.Errorf("combine must be one of sum, mean, min; got %q", c.Combine))
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// PairingOptions converts c into engine options. Call Validate first;
// invalid fields are reported again here rather than panicking.
func (c *Config) PairingOptions() ([]pairing.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	engine, _ := pairing.ParseEngine(c.Engine)
	algo, _ := mwmatch.ParseAlgorithm(c.Algorithm)
	ties, _ := roommates.ParseTiePolicy(c.Ties)
	strategy, _ := trio.ParseStrategy(c.Trio)

	return []pairing.Option{
		pairing.WithEngine(engine),
		pairing.WithAlgorithm(algo),
		pairing.WithResolution(c.Resolution),
		pairing.WithTiePolicy(ties, c.Seed),
		pairing.WithTrioStrategy(strategy),
		pairing.WithMaxParticipants(c.MaxParticipants),
		pairing.WithMaxEvaluations(c.MaxEvaluations),
	}, nil
}

// Combiner returns the rating fold named by c.Combine.
func (c *Config) Combiner() (affinity.Combine, error) {
	f, ok := combiners[c.Combine]
	if !ok {
		return nil, fmt.Errorf("unknown combine %q", c.Combine)
	}

	return f, nil
}

// Format returns the parsed output format.
func (c *Config) Format() (report.Format, error) {
	return report.ParseFormat(c.Output.Format)
}
