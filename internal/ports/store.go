package ports

import (
	"context"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// MatchStore is the injected registry of live matches. The in-memory
// implementation is authoritative; mutating operations on one match are
// serialized by the caller, so implementations only need to be safe for
// concurrent access across matches.
type MatchStore interface {
	// Get returns the live aggregate for a match id.
	// Returns domain.ErrMatchNotFound for unknown ids.
	Get(ctx context.Context, matchID string) (*domain.Match, error)

	// Put registers or replaces the aggregate.
	Put(ctx context.Context, m *domain.Match) error

	// Delete removes the aggregate.
	Delete(ctx context.Context, matchID string) error

	// FindPending returns a match of the given game type still waiting for
	// its seat-2 opponent, or domain.ErrMatchNotFound when none exists.
	FindPending(ctx context.Context, gt domain.GameType) (*domain.Match, error)
}
