package domain

// TrickPlay is a single card played into the current trick.
type TrickPlay struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// CompletedTrick archives a resolved trick until the next one completes, so
// clients can animate the trick win.
type CompletedTrick struct {
	Plays  []TrickPlay `json:"plays"`
	Winner int         `json:"winner"`
	Points int         `json:"points"`
}

// WinningPlay returns the index into plays of the winning play. The lead suit
// is the suit of the first play; trump is nil for no-trump games. A trump
// play beats any non-trump play, otherwise the highest value of the
// comparison suit (trump if any trump was played, else the lead suit) wins.
func WinningPlay(plays []TrickPlay, trump *Suit) int {
	lead := plays[0].Card.Suit
	best := 0
	for i := 1; i < len(plays); i++ {
		if beats(plays[i].Card, plays[best].Card, lead, trump) {
			best = i
		}
	}
	return best
}

func beats(c, cur Card, lead Suit, trump *Suit) bool {
	if trump != nil {
		switch {
		case c.Suit == *trump && cur.Suit != *trump:
			return true
		case c.Suit != *trump && cur.Suit == *trump:
			return false
		case c.Suit == *trump && cur.Suit == *trump:
			return c.Value > cur.Value
		}
	}
	// Neither card is trump: only lead-suit plays can win.
	if c.Suit != lead {
		return false
	}
	if cur.Suit != lead {
		return true
	}
	return c.Value > cur.Value
}

// TrickPoints sums the point values of the played cards.
func TrickPoints(plays []TrickPlay) int {
	total := 0
	for _, p := range plays {
		total += p.Card.Points
	}
	return total
}
