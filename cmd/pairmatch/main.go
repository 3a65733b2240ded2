// SPDX-License-Identifier: MIT

// pairmatch pairs the participants of a pair-research session.
//
// Input is either an edge file of [a, b, weight] triples (JSONC or YAML) or
// a CSV rating matrix. An optional CSV roster attaches names and requests.
// The result is printed as the weekly announcement text or as a JSON, YAML
// or CBOR document.
//
// Exit codes: 0 on success, 1 when the engine cannot produce a partition,
// 2 for usage and input errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/internal/config"
	"github.com/katalvlaran/pairmatch/internal/report"
	"github.com/katalvlaran/pairmatch/pairing"
)

const (
	exitOK    = 0
	exitSolve = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// flags holds the command line; config fields are overridden only by flags
// the user actually set.
type flags struct {
	configPath string
	edgesPath  string
	ratings    string
	roster     string
	logLevel   string

	cfg *config.Config
	set *pflag.FlagSet
}

func newFlags(stderr io.Writer) *flags {
	f := &flags{cfg: config.Default()}
	fs := pflag.NewFlagSet("pairmatch", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&f.edgesPath, "edges", "e", "", "edge file of [a, b, weight] triples (.jsonc, .json, .yaml)")
	fs.StringVarP(&f.ratings, "ratings", "r", "", "CSV rating matrix with a header row of names")
	fs.StringVar(&f.roster, "roster", "", "CSV roster with name and request columns")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	fs.String("engine", f.cfg.Engine, "engine: max-weight, stable, stable-fallback, stable-merge")
	fs.String("algorithm", f.cfg.Algorithm, "matching algorithm: blossom, exact")
	fs.Float64("resolution", f.cfg.Resolution, "weight quantum of the blossom algorithm")
	fs.String("ties", f.cfg.Ties, "tie policy for stable engines: strict, lower-index, seeded")
	fs.Int64("seed", f.cfg.Seed, "seed for the seeded tie policy")
	fs.String("trio", f.cfg.Trio, "trio strategy for odd groups: joint, greedy")
	fs.Int("max-participants", f.cfg.MaxParticipants, "participant cap; 0 disables it")
	fs.Int("max-evaluations", f.cfg.MaxEvaluations, "cap on trio remainder matchings; 0 is unlimited")
	fs.String("combine", f.cfg.Combine, "rating fold: sum, mean, min")
	fs.Float64("missing-weight", 0, "weight for pairs absent from the edge file (default: reject)")
	fs.StringP("format", "f", f.cfg.Output.Format, "output format: text, json, yaml, cbor")
	fs.StringP("output", "o", "", "output file (default: standard output)")

	f.set = fs

	return f
}

// resolve loads the config file, then applies every flag that was set.
func (f *flags) resolve() (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(f.configPath); err != nil {
			return nil, err
		}
	}

	fs := f.set
	if fs.Changed("engine") {
		cfg.Engine, _ = fs.GetString("engine")
	}
	if fs.Changed("algorithm") {
		cfg.Algorithm, _ = fs.GetString("algorithm")
	}
	if fs.Changed("resolution") {
		cfg.Resolution, _ = fs.GetFloat64("resolution")
	}
	if fs.Changed("ties") {
		cfg.Ties, _ = fs.GetString("ties")
	}
	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("trio") {
		cfg.Trio, _ = fs.GetString("trio")
	}
	if fs.Changed("max-participants") {
		cfg.MaxParticipants, _ = fs.GetInt("max-participants")
	}
	if fs.Changed("max-evaluations") {
		cfg.MaxEvaluations, _ = fs.GetInt("max-evaluations")
	}
	if fs.Changed("combine") {
		cfg.Combine, _ = fs.GetString("combine")
	}
	if fs.Changed("missing-weight") {
		w, _ := fs.GetFloat64("missing-weight")
		cfg.MissingWeight = &w
	}
	if fs.Changed("format") {
		cfg.Output.Format, _ = fs.GetString("format")
	}
	if fs.Changed("output") {
		cfg.Output.Path, _ = fs.GetString("output")
	}

	return cfg, cfg.Validate()
}

func run(args []string, stdout, stderr io.Writer) int {
	f := newFlags(stderr)
	if err := f.set.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if rest := f.set.Args(); len(rest) > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument: %s\n", rest[0])
		return exitUsage
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		fmt.Fprintf(stderr, "error: --log-level: %v\n", err)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := f.resolve()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitUsage
	}
	opts, err := cfg.PairingOptions()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitUsage
	}
	format, _ := cfg.Format()

	in, err := load(f, cfg)
	if err != nil {
		logger.Error("reading input", "error", err)
		return exitUsage
	}
	logger.Debug("input loaded", "participants", in.graph.N(), "source", in.source)

	res, err := in.solve(opts...)
	if err != nil {
		logger.Error("no partition", "engine", cfg.Engine, "error", err)
		if errors.Is(err, affinity.ErrMalformedGraph) {
			return exitUsage
		}
		return exitSolve
	}
	switch {
	case res.FallbackReason == "":
	case res.Engine == pairing.StableMerge:
		logger.Warn("stable pass incomplete, leftover placed by max-weight",
			"reason", res.FallbackReason,
			"leftover", res.Leftover,
			"baseline_total", res.BaselineTotal,
		)
	default:
		logger.Warn("stable matching unavailable, used max-weight", "reason", res.FallbackReason)
	}
	logger.Info("partition ready",
		"engine", res.Engine.String(),
		"groups", len(res.Matching.Groups),
		"total", res.Total,
		"stable", res.Stable,
	)

	if err := write(cfg.Output.Path, stdout, format, in.graph, res); err != nil {
		logger.Error("writing report", "path", cfg.Output.Path, "error", err)
		return exitSolve
	}

	return exitOK
}

func write(path string, stdout io.Writer, format report.Format, g *affinity.Graph, res pairing.Result) error {
	if path == "" || path == "-" {
		return report.Render(stdout, format, g, res)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Render(out, format, g, res); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
