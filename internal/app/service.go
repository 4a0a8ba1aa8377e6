// Package app contains the use-cases for the match engine: every action in
// the external surface is one Service method performing a single atomic unit
// of work against one match.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/bot"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/config"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/ports"
)

// Delta is the snapshot returned after every accepted action or on-demand
// query: the full current match state tagged with its revision.
type Delta struct {
	MatchID      string        `json:"match_id"`
	Revision     int64         `json:"revision"`
	State        *domain.Match `json:"state"`
	ServerTimeMs int64         `json:"server_time_ms"`
}

// EventsPage is the catch-up response for a subscribe query.
type EventsPage struct {
	Events        []Event `json:"events"`
	LatestEventID int64   `json:"latest_event_id"`
}

// MatchResult is the end-of-match settlement.
type MatchResult struct {
	MatchID   string   `json:"match_id"`
	Standings []int    `json:"standings"` // seats, best first
	Scores    [4]int   `json:"scores"`
	Rewards   [4]int64 `json:"rewards"` // by seat
}

// Service wires the domain state machine to its ports. Mutating operations on
// one match are serialized by a per-match mutex; cross-match operations
// proceed in parallel.
type Service struct {
	store   ports.MatchStore
	cfg     *config.Config
	log     *zap.Logger
	clock   quartz.Clock
	sinks   []ports.SnapshotSink
	economy ports.EconomyPort
	rewards ports.RewardPolicy

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	streams map[string]*eventStream
}

// Option customizes a Service.
type Option func(*Service)

// WithClock injects the clock used for deadlines and timestamps.
func WithClock(c quartz.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithSinks attaches best-effort durable mirrors.
func WithSinks(sinks ...ports.SnapshotSink) Option {
	return func(s *Service) { s.sinks = append(s.sinks, sinks...) }
}

// WithEconomy attaches the wallet port used at settlement.
func WithEconomy(e ports.EconomyPort) Option {
	return func(s *Service) { s.economy = e }
}

// WithRewardPolicy overrides the configured reward table.
func WithRewardPolicy(r ports.RewardPolicy) Option {
	return func(s *Service) { s.rewards = r }
}

// NewService constructs the engine over a match store.
func NewService(store ports.MatchStore, cfg *config.Config, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store:   store,
		cfg:     cfg,
		log:     log,
		clock:   quartz.NewReal(),
		rewards: config.StaticRewards{Table: cfg.RewardTable},
		locks:   make(map[string]*sync.Mutex),
		streams: make(map[string]*eventStream),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// matchLock returns the mutex and event stream for a match, creating them on
// first use.
func (s *Service) matchLock(matchID string) (*sync.Mutex, *eventStream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[matchID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[matchID] = lock
		s.streams[matchID] = newEventStream(s.cfg.EventStreamCap)
	}
	return lock, s.streams[matchID]
}

func (s *Service) nowMs() int64 {
	return s.clock.Now().UnixMilli()
}

func (s *Service) delta(m *domain.Match) Delta {
	return Delta{
		MatchID:      m.ID,
		Revision:     m.Revision,
		State:        m.Clone(),
		ServerTimeMs: s.nowMs(),
	}
}

// commit stamps and appends the drafted events, re-arms the turn deadline,
// and mirrors the accepted snapshot. Callers hold the match lock and have
// already bumped the revision.
func (s *Service) commit(ctx context.Context, m *domain.Match, es *eventStream, drafts []eventDraft) (Delta, error) {
	now := s.nowMs()
	for _, d := range drafts {
		es.append(Event{
			Type:        d.Type,
			MatchID:     m.ID,
			Revision:    m.Revision,
			TimestampMs: now,
			ActorSeat:   d.ActorSeat,
			Auto:        d.Auto,
			Payload:     d.Payload,
		})
	}
	s.armDeadline(m)
	if err := s.store.Put(ctx, m); err != nil {
		return Delta{}, err
	}
	s.mirror(ctx, m)
	return s.delta(m), nil
}

// mirror forwards the snapshot to every durable sink. Failures never block
// the response; they are surfaced through the log.
func (s *Service) mirror(ctx context.Context, m *domain.Match) {
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, m); err != nil {
			s.log.Warn("snapshot mirror failed",
				zap.String("sink", sink.Name()),
				zap.String("match_id", m.ID),
				zap.Int64("revision", m.Revision),
				zap.Error(err))
		}
	}
}

// mutate runs one state-changing action as an atomic read-modify-write under
// the match lock. expectedRev < 0 skips the optimistic-concurrency check
// (system-initiated actions only).
func (s *Service) mutate(ctx context.Context, matchID string, expectedRev int64, fn func(m *domain.Match) ([]eventDraft, error)) (Delta, error) {
	lock, es := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return Delta{}, err
	}
	if expectedRev >= 0 && expectedRev != m.Revision {
		return Delta{}, domain.ErrRevisionConflict
	}
	drafts, err := fn(m)
	if err != nil {
		return Delta{}, err
	}
	m.Revision++
	return s.commit(ctx, m, es, drafts)
}

// CreateMatch opens a new match with the caller at seat 0 and bots at seats
// 1 and 3.
func (s *Service) CreateMatch(ctx context.Context, gt domain.GameType, userID, displayName string) (Delta, error) {
	if !gt.Valid() {
		return Delta{}, domain.ErrUnknownGameType
	}
	id := uuid.NewString()
	creator := domain.Player{UserID: userID, DisplayName: displayName}
	m := domain.NewMatch(id, gt, s.clock.Now().UnixNano(),
		creator, [2]domain.Player{bot.Identity(1), bot.Identity(3)},
		s.cfg.TargetScore(gt), s.cfg.Rounds(gt))
	m.CreatedAtMs = s.nowMs()

	lock, es := s.matchLock(id)
	lock.Lock()
	defer lock.Unlock()

	drafts := []eventDraft{{
		Type:      EventMatchCreated,
		ActorSeat: 0,
		Payload:   PlayerJoinedPayload{Seat: 0, UserID: userID, DisplayName: displayName},
	}}
	delta, err := s.commit(ctx, m, es, drafts)
	if err != nil {
		return Delta{}, err
	}
	s.log.Info("match created",
		zap.String("match_id", id),
		zap.String("game_type", string(gt)),
		zap.String("user_id", userID))
	return delta, nil
}

// JoinMatch seats the caller at seat 2 and starts the first round.
func (s *Service) JoinMatch(ctx context.Context, matchID string, expectedRev int64, userID, displayName string) (Delta, error) {
	return s.mutate(ctx, matchID, expectedRev, func(m *domain.Match) ([]eventDraft, error) {
		p := domain.Player{UserID: userID, DisplayName: displayName}
		seat, pc, err := m.Join(p)
		if err != nil {
			return nil, err
		}
		drafts := []eventDraft{{
			Type:      EventPlayerJoined,
			ActorSeat: seat,
			Payload:   PlayerJoinedPayload{Seat: seat, UserID: userID, DisplayName: displayName},
		}}
		return append(drafts, phaseDraft(m, pc)), nil
	})
}

// FindMatch pairs the caller with a pending single-seat match of the same
// game type, or creates a new one. The returned seat is 2 when paired and 0
// when newly created.
func (s *Service) FindMatch(ctx context.Context, gt domain.GameType, userID, displayName string) (Delta, int, error) {
	if !gt.Valid() {
		return Delta{}, -1, domain.ErrUnknownGameType
	}
	if pending, err := s.store.FindPending(ctx, gt); err == nil {
		delta, joinErr := s.JoinMatch(ctx, pending.ID, -1, userID, displayName)
		if joinErr == nil {
			return delta, 2, nil
		}
		// Lost a pairing race; fall through and open a fresh match.
		if !errors.Is(joinErr, domain.ErrMatchFull) && !errors.Is(joinErr, domain.ErrInvalidPhase) {
			return Delta{}, -1, joinErr
		}
	}
	delta, err := s.CreateMatch(ctx, gt, userID, displayName)
	if err != nil {
		return Delta{}, -1, err
	}
	return delta, 0, nil
}

// SubmitPass records a passing selection for a seat.
func (s *Service) SubmitPass(ctx context.Context, matchID string, expectedRev int64, seat int, cardIDs []int) (Delta, error) {
	if seat < 0 || seat > 3 {
		return Delta{}, domain.ErrOutOfTurn
	}
	return s.mutate(ctx, matchID, expectedRev, func(m *domain.Match) ([]eventDraft, error) {
		_, pc, err := m.SubmitPass(seat, cardIDs)
		if err != nil {
			return nil, err
		}
		drafts := []eventDraft{{
			Type:      EventPassSubmitted,
			ActorSeat: seat,
			Payload:   PassSubmittedPayload{Seat: seat},
		}}
		if pc != nil {
			drafts = append(drafts, phaseDraft(m, pc))
		}
		return drafts, nil
	})
}

// SubmitBid records a bid for the seat on turn.
func (s *Service) SubmitBid(ctx context.Context, matchID string, expectedRev int64, seat, bid int) (Delta, error) {
	if seat < 0 || seat > 3 {
		return Delta{}, domain.ErrOutOfTurn
	}
	return s.mutate(ctx, matchID, expectedRev, func(m *domain.Match) ([]eventDraft, error) {
		pc, err := m.SubmitBid(seat, bid)
		if err != nil {
			return nil, err
		}
		drafts := []eventDraft{{
			Type:      EventBidSubmitted,
			ActorSeat: seat,
			Payload:   BidSubmittedPayload{Seat: seat, Bid: bid},
		}}
		if pc != nil {
			drafts = append(drafts, phaseDraft(m, pc))
		}
		return drafts, nil
	})
}

// SubmitMove plays one card for the seat on turn.
func (s *Service) SubmitMove(ctx context.Context, matchID string, expectedRev int64, seat, cardID int) (Delta, error) {
	if seat < 0 || seat > 3 {
		return Delta{}, domain.ErrOutOfTurn
	}
	return s.mutate(ctx, matchID, expectedRev, func(m *domain.Match) ([]eventDraft, error) {
		round := m.RoundNumber
		idx := -1
		for i, c := range m.Hands[seat] {
			if c.ID == cardID {
				idx = i
				break
			}
		}
		var card domain.Card
		if idx >= 0 {
			card = m.Hands[seat][idx]
		}
		out, err := m.PlayCard(seat, cardID)
		if err != nil {
			return nil, err
		}
		return playDrafts(m, round, seat, card, out, false), nil
	})
}

// Snapshot returns the current state without mutating anything.
func (s *Service) Snapshot(ctx context.Context, matchID string) (Delta, error) {
	lock, _ := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()
	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return Delta{}, err
	}
	return s.delta(m), nil
}

// Subscribe returns all retained events newer than the cursor plus the latest
// event id, so clients can catch up on intermediate transitions.
func (s *Service) Subscribe(ctx context.Context, matchID string, sinceEventID int64) (EventsPage, error) {
	lock, es := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()
	if _, err := s.store.Get(ctx, matchID); err != nil {
		return EventsPage{}, err
	}
	events, latest := es.since(sinceEventID)
	return EventsPage{Events: events, LatestEventID: latest}, nil
}

// EndMatch settles a completed match: final standings plus reward payout.
// Settlement is idempotent; repeated calls return the same result without
// paying twice.
func (s *Service) EndMatch(ctx context.Context, matchID string) (MatchResult, error) {
	lock, es := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return MatchResult{}, err
	}
	if m.Phase != domain.PhaseCompleted {
		return MatchResult{}, domain.ErrInvalidPhase
	}

	standings := m.RankedSeats()
	rewards := s.rewards.Rewards(m.GameType, standings)
	result := MatchResult{MatchID: m.ID, Standings: standings, Scores: m.Scores, Rewards: rewards}

	if m.RewardsPaid {
		return result, nil
	}
	m.RewardsPaid = true
	updates := make([]ports.WalletUpdate, 0, 4)
	for seat := range m.Players {
		m.Players[seat].Coins += rewards[seat]
		p := m.Players[seat]
		if p.UserID == "" || p.IsBot || rewards[seat] == 0 {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: p.UserID,
			Amount: rewards[seat],
			Metadata: map[string]interface{}{
				"match_id": m.ID,
				"reason":   "match_settlement",
			},
		})
	}
	if s.economy != nil && len(updates) > 0 {
		if err := s.economy.UpdateBalances(ctx, updates); err != nil {
			s.log.Warn("wallet settlement failed", zap.String("match_id", m.ID), zap.Error(err))
		}
	}
	m.Revision++
	if _, err := s.commit(ctx, m, es, []eventDraft{{
		Type:      EventRewardsSettled,
		ActorSeat: -1,
		Payload:   RewardsSettledPayload{Rewards: rewards},
	}}); err != nil {
		return MatchResult{}, err
	}
	return result, nil
}

// phaseDraft builds the PHASE_CHANGED event for a transition.
func phaseDraft(m *domain.Match, pc *domain.PhaseChange) eventDraft {
	return eventDraft{
		Type:      EventPhaseChanged,
		ActorSeat: -1,
		Payload:   PhaseChangedPayload{From: pc.From, To: pc.To, Round: m.RoundNumber},
	}
}

// playDrafts expands a play outcome into the event sequence clients need to
// observe intermediate transitions (trick completion, round end, next phase).
func playDrafts(m *domain.Match, round, seat int, card domain.Card, out domain.PlayOutcome, auto bool) []eventDraft {
	drafts := []eventDraft{{
		Type:      EventCardPlayed,
		ActorSeat: seat,
		Auto:      auto,
		Payload:   CardPlayedPayload{Seat: seat, Card: card, NextTurn: m.TurnIndex},
	}}
	if out.Trick != nil {
		drafts = append(drafts, eventDraft{
			Type:      EventTrickCompleted,
			ActorSeat: -1,
			Auto:      auto,
			Payload:   TrickCompletedPayload{Winner: out.Trick.Winner, Points: out.Trick.Points, Plays: out.Trick.Plays},
		})
	}
	if out.RoundEnded {
		drafts = append(drafts, eventDraft{
			Type:      EventRoundEnded,
			ActorSeat: -1,
			Auto:      auto,
			Payload:   RoundEndedPayload{Round: round, RoundScores: out.RoundScores, Scores: m.Scores},
		})
	}
	if out.PhaseChange != nil {
		drafts = append(drafts, phaseDraft(m, out.PhaseChange))
	}
	if out.MatchCompleted {
		drafts = append(drafts, eventDraft{
			Type:      EventMatchCompleted,
			ActorSeat: -1,
			Auto:      auto,
			Payload:   MatchCompletedPayload{Standings: m.RankedSeats(), Scores: m.Scores},
		})
	}
	return drafts
}
