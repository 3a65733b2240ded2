// SPDX-License-Identifier: MIT
// Package: pairmatch/affinity
//
// errors.go — sentinel errors shared by the graph and every solver.
//
// Error policy:
//   • Callers branch with errors.Is(err, ErrX); never compare strings.
//   • Each sentinel has a structured companion type (GraphError, SolverError,
//     SizeError) carrying the offending participant ids, so a human running
//     the session can fix the input or fall back to a manual pairing.
//   • The structured types Unwrap to their sentinel.

package affinity

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGraph indicates incomplete, self-referential, conflicting or
	// non-finite input triples.
	ErrMalformedGraph = errors.New("affinity: malformed graph")

	// ErrSolver indicates a solver precondition violation (too few
	// participants, wrong parity for the chosen solver, bad vertex subset).
	ErrSolver = errors.New("affinity: solver precondition violated")

	// ErrInputTooLarge indicates that a defensive size cap was exceeded.
	ErrInputTooLarge = errors.New("affinity: input too large")
)

// Cause names the specific reason behind an ErrMalformedGraph.
type Cause string

// Malformed-graph causes.
const (
	CauseBadSize      Cause = "negative participant count"
	CauseOutOfRange   Cause = "participant id out of range"
	CauseSelfPair     Cause = "self-pair"
	CauseConflict     Cause = "conflicting duplicate weight"
	CauseNonFinite    Cause = "weight is NaN or Inf"
	CauseMissingPair  Cause = "missing pair"
	CauseNotSquare    Cause = "matrix is not square"
	CauseAsymmetric   Cause = "matrix is not symmetric"
	CauseParticipants Cause = "participant list length mismatch"
)

// GraphError describes why a Graph could not be built.
// A and B are the offending participant ids, or -1 when not applicable.
type GraphError struct {
	Op    string
	Cause Cause
	A, B  int
}

func (e *GraphError) Error() string {
	if e.A < 0 && e.B < 0 {
		return fmt.Sprintf("%s: %s: %s", e.Op, ErrMalformedGraph, e.Cause)
	}

	return fmt.Sprintf("%s: %s: %s (%d,%d)", e.Op, ErrMalformedGraph, e.Cause, e.A, e.B)
}

// Unwrap exposes ErrMalformedGraph to errors.Is.
func (e *GraphError) Unwrap() error { return ErrMalformedGraph }

// SolverError describes a violated solver precondition.
type SolverError struct {
	Op     string
	N      int
	Reason string
	// Participants lists the ids involved, if any.
	Participants []int
}

func (e *SolverError) Error() string {
	if len(e.Participants) == 0 {
		return fmt.Sprintf("%s: %s: %s (n=%d)", e.Op, ErrSolver, e.Reason, e.N)
	}

	return fmt.Sprintf("%s: %s: %s (n=%d, participants=%v)", e.Op, ErrSolver, e.Reason, e.N, e.Participants)
}

// Unwrap exposes ErrSolver to errors.Is.
func (e *SolverError) Unwrap() error { return ErrSolver }

// SizeError reports an exceeded cap. Limit is the configured maximum and
// Got is the observed value; What names the measured quantity.
type SizeError struct {
	Op    string
	What  string
	Got   int
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %s: %s=%d exceeds limit %d", e.Op, ErrInputTooLarge, e.What, e.Got, e.Limit)
}

// Unwrap exposes ErrInputTooLarge to errors.Is.
func (e *SizeError) Unwrap() error { return ErrInputTooLarge }

// CheckSize fails with ErrInputTooLarge when limit > 0 and n > limit.
// A non-positive limit disables the cap.
// Complexity: O(1).
func CheckSize(op string, n, limit int) error {
	if limit > 0 && n > limit {
		return &SizeError{Op: op, What: "participants", Got: n, Limit: limit}
	}

	return nil
}

func malformed(op string, cause Cause, a, b int) error {
	return &GraphError{Op: op, Cause: cause, A: a, B: b}
}
