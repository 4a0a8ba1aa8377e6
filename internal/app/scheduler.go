package app

import (
	"context"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/bot"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// armDeadline resets turnDeadlineMs for the next turn's occupant. Bot and
// disconnected seats get the short timeout so stalled matches keep moving.
func (s *Service) armDeadline(m *domain.Match) {
	switch m.Phase {
	case domain.PhasePassing, domain.PhaseBidding, domain.PhasePlaying:
		m.TurnDeadlineMs = s.nowMs() + s.turnTimeoutMs(m)
	default:
		m.TurnDeadlineMs = 0
	}
}

func (s *Service) turnTimeoutMs(m *domain.Match) int64 {
	humanMs := s.cfg.TurnTimeoutHumanMs
	if m.GameType == domain.GameTypeCallbreak {
		humanMs += s.cfg.CallbreakExtraMs
	}

	if m.Phase == domain.PhasePassing {
		// Passing is concurrent across seats: wait for humans while any
		// connected human is still incomplete.
		for seat := 0; seat < 4; seat++ {
			p := m.Players[seat]
			if !m.Passing.Submitted[seat] && !p.IsBot && !p.Disconnected {
				return humanMs
			}
		}
		return s.cfg.TurnTimeoutBotMs
	}

	p := m.Players[m.TurnIndex]
	if p.IsBot || p.Disconnected {
		return s.cfg.TurnTimeoutBotMs
	}
	return humanMs
}

// TimeoutMove is the scheduler sweep: a no-op before the turn deadline, and
// exactly one phase-appropriate auto-action once it has expired. Auto-actions
// carry an auto marker so clients can distinguish fallback moves from
// deliberate ones.
func (s *Service) TimeoutMove(ctx context.Context, matchID string) (Delta, error) {
	lock, es := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return Delta{}, err
	}
	switch m.Phase {
	case domain.PhasePassing, domain.PhaseBidding, domain.PhasePlaying:
	default:
		return s.delta(m), nil
	}
	if s.nowMs() < m.TurnDeadlineMs {
		return s.delta(m), nil
	}

	drafts, err := s.autoAction(m)
	if err != nil {
		return Delta{}, err
	}
	m.Revision++
	return s.commit(ctx, m, es, drafts)
}

// autoAction performs the single fallback action for the current phase.
func (s *Service) autoAction(m *domain.Match) ([]eventDraft, error) {
	switch m.Phase {
	case domain.PhasePassing:
		return s.autoPass(m)
	case domain.PhaseBidding:
		return s.autoBid(m)
	default:
		return s.autoPlay(m)
	}
}

// autoPass selects for every seat still incomplete and finalizes passing.
func (s *Service) autoPass(m *domain.Match) ([]eventDraft, error) {
	var drafts []eventDraft
	for seat := 0; seat < 4; seat++ {
		if m.Passing.Submitted[seat] {
			continue
		}
		selection := bot.PassSelection(m.Hands[seat])
		_, pc, err := m.SubmitPass(seat, selection)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, eventDraft{
			Type:      EventPassSubmitted,
			ActorSeat: seat,
			Auto:      true,
			Payload:   PassSubmittedPayload{Seat: seat},
		})
		if pc != nil {
			drafts = append(drafts, phaseDraft(m, pc))
		}
	}
	return drafts, nil
}

// autoBid bids for the seat on turn using the high-card heuristic.
func (s *Service) autoBid(m *domain.Match) ([]eventDraft, error) {
	seat := m.TurnIndex
	value := bot.Bid(m.Hands[seat], domain.RulesFor(m.GameType))
	pc, err := m.SubmitBid(seat, value)
	if err != nil {
		return nil, err
	}
	drafts := []eventDraft{{
		Type:      EventBidSubmitted,
		ActorSeat: seat,
		Auto:      true,
		Payload:   BidSubmittedPayload{Seat: seat, Bid: value},
	}}
	if pc != nil {
		drafts = append(drafts, phaseDraft(m, pc))
	}
	return drafts, nil
}

// autoPlay plays the lowest-value legal card for the seat on turn.
func (s *Service) autoPlay(m *domain.Match) ([]eventDraft, error) {
	seat := m.TurnIndex
	round := m.RoundNumber
	card := bot.Play(m.LegalPlays(seat), m.Hands[seat])
	out, err := m.PlayCard(seat, card.ID)
	if err != nil {
		return nil, err
	}
	return playDrafts(m, round, seat, card, out, true), nil
}
