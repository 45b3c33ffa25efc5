package app

import "errors"

// Action errors. All are local, recoverable guard failures: the engine
// returns them without mutating match state.
var (
	// ErrMatchNotFound means the action referenced an id absent from the
	// session directory.
	ErrMatchNotFound = errors.New("match not found")
	// ErrPhaseViolation means the action is not legal in the match's current
	// phase, including bowling before a batting number was chosen.
	ErrPhaseViolation = errors.New("action not legal in current phase")
	// ErrTurnViolation means the actor is not the one entitled to act.
	ErrTurnViolation = errors.New("actor not entitled to act")
	// ErrRangeViolation means a numeric input is outside its allowed bound.
	ErrRangeViolation = errors.New("value out of range")
	// ErrDuplicateJoin means the match already has two participants, or the
	// creator tried to join their own match.
	ErrDuplicateJoin = errors.New("match already has two players")
)
