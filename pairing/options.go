// SPDX-License-Identifier: MIT

package pairing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pairmatch/mwmatch"
	"github.com/katalvlaran/pairmatch/roommates"
	"github.com/katalvlaran/pairmatch/trio"
)

// Engine selects the partitioning method.
type Engine int

const (
	// MaxWeight maximises total affinity; odd N gets one trio.
	MaxWeight Engine = iota

	// StableRoommates returns a stable matching or an error.
	StableRoommates

	// StableWithFallback tries StableRoommates, then MaxWeight.
	StableWithFallback

	// StableMerge keeps every pair a partial stable pass finds and places
	// the rest by maximum weight.
	StableMerge
)

// String implements fmt.Stringer.
func (e Engine) String() string {
	switch e {
	case MaxWeight:
		return "max-weight"
	case StableRoommates:
		return "stable"
	case StableWithFallback:
		return "stable-fallback"
	case StableMerge:
		return "stable-merge"
	default:
		return "unknown"
	}
}

// ParseEngine is the inverse of Engine.String.
func ParseEngine(s string) (Engine, error) {
	for _, e := range []Engine{MaxWeight, StableRoommates, StableWithFallback, StableMerge} {
		if e.String() == s {
			return e, nil
		}
	}

	return 0, fmt.Errorf("pairing: unknown engine %q", s)
}

// Options gathers the configuration of every engine.
type Options struct {
	Engine    Engine
	Matching  mwmatch.Options
	Trio      trio.Options
	Roommates roommates.Options
}

// DefaultOptions returns MaxWeight with each package's defaults.
func DefaultOptions() Options {
	return Options{
		Engine:    MaxWeight,
		Matching:  mwmatch.DefaultOptions(),
		Trio:      trio.DefaultOptions(),
		Roommates: roommates.DefaultOptions(),
	}
}

// Option mutates Options before solving.
type Option func(*Options)

// WithEngine selects the engine. Panics on an unknown value.
func WithEngine(e Engine) Option {
	if e < MaxWeight || e > StableMerge {
		panic(fmt.Sprintf("pairing: WithEngine(%d)", int(e)))
	}
	return func(o *Options) {
		o.Engine = e
	}
}

// WithAlgorithm selects the matching algorithm for pairs and for every trio
// remainder.
func WithAlgorithm(a mwmatch.Algorithm) Option {
	if a != mwmatch.Blossom && a != mwmatch.ExactDP {
		panic(fmt.Sprintf("pairing: WithAlgorithm(%d)", int(a)))
	}
	return func(o *Options) {
		o.Matching.Algo = a
		o.Trio.Matching.Algo = a
	}
}

// WithResolution sets the blossom weight quantum. Panics unless r is a
// positive finite number.
func WithResolution(r float64) Option {
	if !(r > 0) || math.IsInf(r, 0) {
		panic(fmt.Sprintf("pairing: WithResolution(%g)", r))
	}
	return func(o *Options) {
		o.Matching.Resolution = r
		o.Trio.Matching.Resolution = r
	}
}

// WithTiePolicy sets how equal weights are ranked for the stable engines.
// seed is used by roommates.TieSeeded only.
func WithTiePolicy(t roommates.TiePolicy, seed int64) Option {
	if t < roommates.TieStrict || t > roommates.TieSeeded {
		panic(fmt.Sprintf("pairing: WithTiePolicy(%d)", int(t)))
	}
	return func(o *Options) {
		o.Roommates.Ties = t
		o.Roommates.Seed = seed
	}
}

// WithTrioStrategy selects joint or greedy trio selection for odd N.
func WithTrioStrategy(s trio.Strategy) Option {
	if s != trio.Joint && s != trio.Greedy {
		panic(fmt.Sprintf("pairing: WithTrioStrategy(%d)", int(s)))
	}
	return func(o *Options) {
		o.Trio.Strategy = s
	}
}

// WithMaxParticipants sets the participant cap of every engine; 0 disables
// the caps. Panics on a negative value.
func WithMaxParticipants(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("pairing: WithMaxParticipants(%d)", n))
	}
	return func(o *Options) {
		o.Matching.MaxParticipants = n
		o.Trio.MaxParticipants = n
		o.Trio.Matching.MaxParticipants = n
		o.Roommates.MaxParticipants = n
	}
}

// WithMaxEvaluations caps the remainder matchings of the joint trio search;
// 0 means unlimited. Panics on a negative value.
func WithMaxEvaluations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("pairing: WithMaxEvaluations(%d)", n))
	}
	return func(o *Options) {
		o.Trio.MaxEvaluations = n
	}
}
