// Package bot provides the auto-play heuristics used when a turn deadline
// expires. The same policies drive bot seats and fallback moves for stalled
// humans.
package bot

import (
	"sort"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// PassSelection picks the 3 cards a seat should give away: the single most
// dangerous card first (highest penalty), then the highest values.
func PassSelection(hand []domain.Card) []int {
	ranked := append([]domain.Card{}, hand...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Value > ranked[j].Value
	})
	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	ids := make([]int, 0, n)
	for _, c := range ranked[:n] {
		ids = append(ids, c.ID)
	}
	return ids
}

// Bid estimates a bid from the count of high cards, scaled into the legal
// range. The minimum legal bid is the conservative floor.
func Bid(hand []domain.Card, rules domain.Rules) int {
	high := 0
	for _, c := range hand {
		if c.Value >= 11 {
			high++
		}
		if rules.Trump != nil && c.Suit == *rules.Trump && c.Value >= 7 {
			high++
		}
	}
	bid := high / 2
	if bid < rules.BidMin {
		bid = rules.BidMin
	}
	if bid > rules.BidMax {
		bid = rules.BidMax
	}
	return bid
}

// Play picks the lowest-value legal card. With no legal card it falls back to
// an arbitrary in-hand card, and with an empty hand to a hardcoded low club;
// neither fallback should occur under correct bookkeeping.
func Play(legal, hand []domain.Card) domain.Card {
	if len(legal) == 0 {
		legal = hand
	}
	if len(legal) == 0 {
		return domain.Card{ID: domain.TwoOfClubsID, Suit: domain.SuitClubs, Value: 2}
	}
	best := legal[0]
	for _, c := range legal[1:] {
		if c.Value < best.Value {
			best = c
		}
	}
	return best
}
