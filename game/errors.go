package game

import "errors"

// Validation errors surfaced by the scoring core. Callers match with
// errors.Is; the wrapped message carries the offending detail.
var (
	ErrInvalidRoster    = errors.New("invalid roster")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrMissingLossEntry = errors.New("missing loss entry")
	ErrInvalidPoints    = errors.New("invalid points")
	ErrWrongPhase       = errors.New("operation not allowed in current phase")
	ErrGameComplete     = errors.New("game already complete")
)
