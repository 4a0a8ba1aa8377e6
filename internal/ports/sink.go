package ports

import (
	"context"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// SnapshotSink mirrors accepted match snapshots to a durable store. Writes
// are best-effort and eventually consistent: a sink error never blocks or
// rolls back the in-memory transition, but it must be surfaced to the caller
// as an observability signal rather than swallowed.
type SnapshotSink interface {
	// Name identifies the sink in logs.
	Name() string

	// Write persists the snapshot.
	Write(ctx context.Context, m *domain.Match) error
}
