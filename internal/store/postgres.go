package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// PostgresSink mirrors match snapshots into a Postgres table. It implements
// ports.SnapshotSink; failures are reported to the caller and never block the
// in-memory transition.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects a pool and ensures the snapshot table exists.
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s := &PostgresSink{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSink) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_snapshots (
			match_id   TEXT PRIMARY KEY,
			game_type  TEXT NOT NULL,
			revision   BIGINT NOT NULL,
			status     TEXT NOT NULL,
			snapshot   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("migrate match_snapshots: %w", err)
	}
	return nil
}

// Name identifies the sink in logs.
func (s *PostgresSink) Name() string { return "postgres" }

// Write upserts the snapshot, keeping only the highest revision. A concurrent
// stale write loses the conditional update and is dropped, which is fine for
// an eventually-consistent mirror.
func (s *PostgresSink) Write(ctx context.Context, m *domain.Match) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", m.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO match_snapshots (match_id, game_type, revision, status, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (match_id) DO UPDATE
		SET revision = EXCLUDED.revision, status = EXCLUDED.status,
		    snapshot = EXCLUDED.snapshot, updated_at = now()
		WHERE match_snapshots.revision < EXCLUDED.revision`,
		m.ID, string(m.GameType), m.Revision, string(m.Status), body)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", m.ID, err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}
