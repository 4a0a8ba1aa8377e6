package domain

// PassDirection is the seat-offset rule governing the pre-round card
// exchange in the passing game.
type PassDirection string

const (
	PassLeft   PassDirection = "left"   // seat+1
	PassRight  PassDirection = "right"  // seat+3
	PassAcross PassDirection = "across" // seat+2
	PassNone   PassDirection = "none"
)

// PassDirectionForRound returns the direction for a 1-based round number.
// The cycle is left, right, across, none.
func PassDirectionForRound(round int) PassDirection {
	switch (round - 1) % 4 {
	case 0:
		return PassLeft
	case 1:
		return PassRight
	case 2:
		return PassAcross
	default:
		return PassNone
	}
}

// Offset returns the recipient seat offset for the direction.
func (d PassDirection) Offset() int {
	switch d {
	case PassLeft:
		return 1
	case PassAcross:
		return 2
	case PassRight:
		return 3
	default:
		return 0
	}
}

// LegalPlays returns the cards the seat may legally play right now. The
// result is empty only when the seat's hand is empty.
func (m *Match) LegalPlays(seat int) []Card {
	hand := m.Hands[seat]
	rules := RulesFor(m.GameType)

	if len(m.CurrentTrick) == 0 {
		// Leading: a restricted suit may not be led while unbroken unless
		// the hand holds nothing else.
		if rules.RestrictedLead != nil && !m.suitBroken(*rules.RestrictedLead) {
			others := cardsNotOfSuit(hand, *rules.RestrictedLead)
			if len(others) > 0 {
				return others
			}
		}
		return append([]Card{}, hand...)
	}

	follow := cardsOfSuit(hand, *m.LeadSuit)
	if len(follow) > 0 {
		return follow
	}

	// Void in the led suit. During the first three tricks of a round penalty
	// cards may not be discarded unless the hand holds nothing else.
	if m.trickOrdinal() <= 3 {
		safe := make([]Card, 0, len(hand))
		for _, c := range hand {
			if c.Points == 0 {
				safe = append(safe, c)
			}
		}
		if len(safe) > 0 {
			return safe
		}
	}
	return append([]Card{}, hand...)
}

func (m *Match) suitBroken(s Suit) bool {
	switch s {
	case SuitHearts:
		return m.HeartsBroken
	case SuitSpades:
		return m.SpadesBroken
	default:
		return true
	}
}

func (m *Match) markBroken(s Suit) {
	switch s {
	case SuitHearts:
		m.HeartsBroken = true
	case SuitSpades:
		m.SpadesBroken = true
	}
}

// trickOrdinal is the 1-based number of the trick currently being played.
func (m *Match) trickOrdinal() int {
	done := 0
	for _, n := range m.TricksWon {
		done += n
	}
	return done + 1
}

func cardsOfSuit(hand []Card, s Suit) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

func cardsNotOfSuit(hand []Card, s Suit) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit != s {
			out = append(out, c)
		}
	}
	return out
}
