package domain

import "errors"

// Validation failures are local and non-mutating: a rejected action leaves
// the match completely unchanged.
var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrRevisionConflict     = errors.New("stale revision, re-fetch snapshot and retry")
	ErrInvalidPhase         = errors.New("action not valid in current phase")
	ErrOutOfTurn            = errors.New("not this seat's turn")
	ErrInvalidCardSelection = errors.New("invalid card selection")
	ErrInvalidBid           = errors.New("bid outside legal range")
	ErrMatchFull            = errors.New("match has no open seat")
	ErrUnknownGameType      = errors.New("unknown game type")
)
