package domain

import "testing"

func TestPassDirectionCycle(t *testing.T) {
	want := []PassDirection{PassLeft, PassRight, PassAcross, PassNone, PassLeft, PassRight, PassAcross, PassNone}
	for round := 1; round <= len(want); round++ {
		if got := PassDirectionForRound(round); got != want[round-1] {
			t.Fatalf("round %d: direction %s, want %s", round, got, want[round-1])
		}
	}

	offsets := map[PassDirection]int{PassLeft: 1, PassRight: 3, PassAcross: 2, PassNone: 0}
	for dir, want := range offsets {
		if got := dir.Offset(); got != want {
			t.Fatalf("%s offset = %d, want %d", dir, got, want)
		}
	}
}

func playingMatch(gt GameType) *Match {
	m := &Match{
		GameType:      gt,
		Phase:         PhasePlaying,
		PlayedCardIDs: make(map[int]bool),
	}
	return m
}

func TestLegalPlaysFollowSuit(t *testing.T) {
	m := playingMatch(GameTypeHearts)
	m.Hands[1] = []Card{
		tc(SuitClubs, 5, 0),
		tc(SuitClubs, 10, 0),
		tc(SuitHearts, 3, 1),
	}
	lead := SuitClubs
	m.LeadSuit = &lead
	m.CurrentTrick = []TrickPlay{{Seat: 0, Card: tc(SuitClubs, 7, 0)}}

	legal := m.LegalPlays(1)
	if len(legal) != 2 {
		t.Fatalf("got %d legal plays, want the 2 clubs", len(legal))
	}
	for _, c := range legal {
		if c.Suit != SuitClubs {
			t.Fatalf("non-club card %d offered while holding clubs", c.ID)
		}
	}
}

func TestLegalPlaysRestrictedLead(t *testing.T) {
	m := playingMatch(GameTypeHearts)
	m.Hands[0] = []Card{
		tc(SuitHearts, 9, 1),
		tc(SuitClubs, 4, 0),
		tc(SuitDiamonds, 8, 0),
	}

	legal := m.LegalPlays(0)
	for _, c := range legal {
		if c.Suit == SuitHearts {
			t.Fatal("hearts offered as lead while unbroken")
		}
	}

	m.HeartsBroken = true
	if got := len(m.LegalPlays(0)); got != 3 {
		t.Fatalf("after break: %d legal plays, want 3", got)
	}

	// A hand of nothing but the restricted suit may lead it regardless.
	m.HeartsBroken = false
	m.Hands[0] = []Card{tc(SuitHearts, 2, 1), tc(SuitHearts, 14, 1)}
	if got := len(m.LegalPlays(0)); got != 2 {
		t.Fatalf("all-hearts hand: %d legal plays, want 2", got)
	}
}

func TestLegalPlaysSpadesLeadRestriction(t *testing.T) {
	m := playingMatch(GameTypeSpades)
	m.Hands[2] = []Card{
		tc(SuitSpades, 14, 0),
		tc(SuitDiamonds, 6, 0),
	}

	for _, c := range m.LegalPlays(2) {
		if c.Suit == SuitSpades {
			t.Fatal("spades offered as lead while unbroken")
		}
	}

	// Callbreak has no lead restriction on the trump suit.
	cb := playingMatch(GameTypeCallbreak)
	cb.Hands[2] = m.Hands[2]
	if got := len(cb.LegalPlays(2)); got != 2 {
		t.Fatalf("callbreak lead: %d legal plays, want 2", got)
	}
}

func TestLegalPlaysEarlyPenaltyDiscard(t *testing.T) {
	m := playingMatch(GameTypeHearts)
	m.Hands[3] = []Card{
		tc(SuitSpades, 12, 13),
		tc(SuitHearts, 6, 1),
		tc(SuitDiamonds, 4, 0),
	}
	lead := SuitClubs
	m.LeadSuit = &lead
	m.CurrentTrick = []TrickPlay{{Seat: 2, Card: tc(SuitClubs, 9, 0)}}

	legal := m.LegalPlays(3)
	if len(legal) != 1 || legal[0].Points != 0 {
		t.Fatalf("first trick discard offered penalty cards: %v", legal)
	}

	// After the third trick the restriction lifts.
	m.TricksWon = [4]int{1, 1, 1, 0}
	if got := len(m.LegalPlays(3)); got != 3 {
		t.Fatalf("fourth trick discard: %d legal plays, want 3", got)
	}

	// A hand of nothing but penalty cards is forced to discard one early.
	m.TricksWon = [4]int{}
	m.Hands[3] = []Card{tc(SuitSpades, 12, 13), tc(SuitHearts, 6, 1)}
	if got := len(m.LegalPlays(3)); got != 2 {
		t.Fatalf("all-penalty discard: %d legal plays, want 2", got)
	}
}
