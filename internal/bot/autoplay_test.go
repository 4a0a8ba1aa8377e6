package bot

import (
	"testing"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

func card(s domain.Suit, value, points int) domain.Card {
	return domain.Card{ID: domain.CardID(s, value), Suit: s, Value: value, Points: points}
}

func TestPassSelectionPrefersPenaltyCards(t *testing.T) {
	hand := []domain.Card{
		card(domain.SuitClubs, 4, 0),
		card(domain.SuitSpades, 12, 13),
		card(domain.SuitHearts, 3, 1),
		card(domain.SuitDiamonds, 14, 0),
		card(domain.SuitClubs, 9, 0),
	}
	ids := PassSelection(hand)
	if len(ids) != 3 {
		t.Fatalf("selected %d cards, want 3", len(ids))
	}
	if ids[0] != domain.QueenOfSpadesID {
		t.Fatalf("first selection %d, want the spade queen", ids[0])
	}
	if ids[1] != domain.CardID(domain.SuitHearts, 3) {
		t.Fatalf("second selection %d, want the heart", ids[1])
	}
	if ids[2] != domain.CardID(domain.SuitDiamonds, 14) {
		t.Fatalf("third selection %d, want the highest remaining card", ids[2])
	}
}

func TestPassSelectionShortHand(t *testing.T) {
	hand := []domain.Card{card(domain.SuitClubs, 4, 0)}
	if got := len(PassSelection(hand)); got != 1 {
		t.Fatalf("selected %d cards from a 1-card hand", got)
	}
}

func TestBidStaysInRange(t *testing.T) {
	var low []domain.Card
	for v := 2; v <= 6; v++ {
		low = append(low, card(domain.SuitDiamonds, v, 0))
	}

	cb := domain.RulesFor(domain.GameTypeCallbreak)
	if got := Bid(low, cb); got != cb.BidMin {
		t.Fatalf("weak hand bid %d, want floor %d", got, cb.BidMin)
	}

	var high []domain.Card
	for v := 2; v <= 14; v++ {
		high = append(high, card(domain.SuitSpades, v, 0))
	}
	sp := domain.RulesFor(domain.GameTypeSpades)
	got := Bid(high, sp)
	if got < sp.BidMin || got > sp.BidMax {
		t.Fatalf("bid %d outside [%d,%d]", got, sp.BidMin, sp.BidMax)
	}
}

func TestPlayPicksLowestLegal(t *testing.T) {
	legal := []domain.Card{
		card(domain.SuitClubs, 10, 0),
		card(domain.SuitClubs, 3, 0),
		card(domain.SuitClubs, 13, 0),
	}
	if got := Play(legal, legal); got.Value != 3 {
		t.Fatalf("played value %d, want 3", got.Value)
	}

	hand := []domain.Card{card(domain.SuitHearts, 8, 1)}
	if got := Play(nil, hand); got.ID != hand[0].ID {
		t.Fatalf("empty legal set: played %d, want the in-hand fallback", got.ID)
	}
}
