// Package store provides MatchStore and SnapshotSink implementations. The
// in-memory store is the authoritative copy of every live match; durable
// sinks are eventually-consistent mirrors.
package store

import (
	"context"
	"sync"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// Memory is a process-local MatchStore.
type Memory struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{matches: make(map[string]*domain.Match)}
}

// Get returns the live aggregate for a match id.
func (s *Memory) Get(_ context.Context, matchID string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

// Put registers or replaces the aggregate.
func (s *Memory) Put(_ context.Context, m *domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = m
	return nil
}

// Delete removes the aggregate.
func (s *Memory) Delete(_ context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchID)
	return nil
}

// FindPending returns a waiting match of the given game type with an open
// seat, preferring the oldest so early creators pair first.
func (s *Memory) FindPending(_ context.Context, gt domain.GameType) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *domain.Match
	for _, m := range s.matches {
		if m.GameType != gt || m.Status != domain.StatusWaiting || !m.OpenSeat() {
			continue
		}
		if best == nil || m.CreatedAtMs < best.CreatedAtMs {
			best = m
		}
	}
	if best == nil {
		return nil, domain.ErrMatchNotFound
	}
	return best, nil
}
