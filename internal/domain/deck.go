package domain

import "sort"

const (
	mcgMultiplier = 16807
	mcgModulus    = 2147483647
)

// seededRand is a Park-Miller multiplicative congruential generator. It is
// deliberately tiny and fully deterministic so a match seed can be used later
// to audit or reconstruct a deal bit for bit.
type seededRand struct {
	state int64
}

func newSeededRand(seed int64) *seededRand {
	// Coerce any integer seed into the generator's valid range [1, modulus-1].
	s := seed % (mcgModulus - 1)
	if s < 0 {
		s += mcgModulus - 1
	}
	return &seededRand{state: s + 1}
}

// next returns a pseudo-random int in [0, n).
func (r *seededRand) next(n int) int {
	r.state = r.state * mcgMultiplier % mcgModulus
	return int(r.state % int64(n))
}

// NewDeck returns the ordered 52-card deck for a game type, with penalty
// points assigned per the active scoring rule.
func NewDeck(gt GameType) []Card {
	deck := make([]Card, 0, 52)
	for s := SuitClubs; s <= SuitHearts; s++ {
		for v := 2; v <= 14; v++ {
			deck = append(deck, Card{
				ID:     CardID(s, v),
				Suit:   s,
				Value:  v,
				Points: cardPoints(gt, s, v),
			})
		}
	}
	return deck
}

// cardPoints returns the penalty value of a card. Only the no-trump scoring
// game carries card points: each heart is worth 1, the spade queen 13.
func cardPoints(gt GameType, s Suit, value int) int {
	if gt != GameTypeHearts {
		return 0
	}
	if s == SuitHearts {
		return 1
	}
	if s == SuitSpades && value == 12 {
		return 13
	}
	return 0
}

// Shuffle returns a seeded Fisher-Yates permutation of the deck. The input is
// not modified.
func Shuffle(deck []Card, seed int64) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng := newSeededRand(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.next(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal shuffles a fresh deck with the given seed and splits it into four
// contiguous 13-card hands in seat order.
func Deal(gt GameType, seed int64) [4][]Card {
	shuffled := Shuffle(NewDeck(gt), seed)
	var hands [4][]Card
	for seat := 0; seat < 4; seat++ {
		hands[seat] = append([]Card{}, shuffled[seat*13:(seat+1)*13]...)
	}
	return hands
}

// SortHand orders a hand by suit then ascending value. Sorting is cosmetic
// for client display and carries no rule weight.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return hand[i].Value < hand[j].Value
	})
}
