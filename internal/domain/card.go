package domain

import "strconv"

// Suit identifies one of the four card suits.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitSpades
	SuitHearts
)

// String returns the canonical lowercase suit name used in payloads and logs.
func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "clubs"
	case SuitDiamonds:
		return "diamonds"
	case SuitSpades:
		return "spades"
	case SuitHearts:
		return "hearts"
	default:
		return "unknown"
	}
}

// Card is a single playing card. Cards are immutable once dealt; Points is
// fixed at deck construction time according to the match's game type.
type Card struct {
	ID     int  `json:"id"`
	Suit   Suit `json:"suit"`
	Value  int  `json:"value"` // 2..14, ace high
	Points int  `json:"points"`
}

// Rank returns the display rank for the card's value.
func (c Card) Rank() string {
	switch c.Value {
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	default:
		return strconv.Itoa(c.Value)
	}
}

// CardID derives the stable deck-wide id for a suit/value pair.
func CardID(s Suit, value int) int {
	return int(s)*13 + value - 2
}

// Well-known card ids used by the rules.
var (
	TwoOfClubsID    = CardID(SuitClubs, 2)
	QueenOfSpadesID = CardID(SuitSpades, 12)
)
