// SPDX-License-Identifier: MIT

package roommates

import (
	"errors"
	"fmt"
)

var (
	// ErrTiePolicy is returned when TieStrict meets two equal weights.
	ErrTiePolicy = errors.New("roommates: tied weights under strict tie policy")

	// ErrNoStableMatching is returned when the instance has no stable matching.
	ErrNoStableMatching = errors.New("roommates: no stable matching exists")
)

// TiePolicy decides how equal weights are ordered when deriving preferences.
type TiePolicy int

const (
	// TieStrict rejects equal weights in any participant's list.
	TieStrict TiePolicy = iota

	// TieLowerIndex ranks the lower participant index first.
	TieLowerIndex

	// TieSeeded ranks by a permutation drawn from Options.Seed.
	TieSeeded
)

// String implements fmt.Stringer.
func (t TiePolicy) String() string {
	switch t {
	case TieStrict:
		return "strict"
	case TieLowerIndex:
		return "lower-index"
	case TieSeeded:
		return "seeded"
	default:
		return "unknown"
	}
}

// ParseTiePolicy is the inverse of TiePolicy.String.
func ParseTiePolicy(s string) (TiePolicy, error) {
	for _, t := range []TiePolicy{TieStrict, TieLowerIndex, TieSeeded} {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("roommates: unknown tie policy %q", s)
}

// DefaultMaxParticipants is the default cap on N.
const DefaultMaxParticipants = 512

// Options configures preference derivation and Solve.
type Options struct {
	Ties            TiePolicy
	Seed            int64 // used by TieSeeded only
	MaxParticipants int   // ≤ 0 disables the cap
}

// DefaultOptions returns TieStrict with the default cap.
func DefaultOptions() Options {
	return Options{Ties: TieStrict, MaxParticipants: DefaultMaxParticipants}
}

// Preferences holds, per participant, every other participant from most to
// least preferred.
type Preferences [][]int

// TieError reports two others that a participant weighs equally.
type TieError struct {
	Op          string
	Participant int
	A, B        int
	Weight      float64
}

func (e *TieError) Error() string {
	return fmt.Sprintf("%s: participant %d weighs %d and %d equally (%g)", e.Op, e.Participant, e.A, e.B, e.Weight)
}

// Unwrap returns ErrTiePolicy.
func (e *TieError) Unwrap() error { return ErrTiePolicy }

// NoStableError reports where Irving's algorithm found an empty list.
type NoStableError struct {
	Op          string
	Phase       int
	Participant int
}

func (e *NoStableError) Error() string {
	return fmt.Sprintf("%s: no stable matching (phase %d emptied the list of participant %d)", e.Op, e.Phase, e.Participant)
}

// Unwrap returns ErrNoStableMatching.
func (e *NoStableError) Unwrap() error { return ErrNoStableMatching }
