package domain

// GameType selects the rule variant a match is played under.
type GameType string

const (
	// GameTypeHearts is the no-trump variant: pre-round passing, penalty
	// points on hearts and the spade queen, lowest score wins.
	GameTypeHearts GameType = "hearts"
	// GameTypeSpades is the trump variant with bids from 0 to 13.
	GameTypeSpades GameType = "spades"
	// GameTypeCallbreak is the trump variant with bids from 1 to 8.
	GameTypeCallbreak GameType = "callbreak"
)

// Valid reports whether gt names a known game type.
func (gt GameType) Valid() bool {
	switch gt {
	case GameTypeHearts, GameTypeSpades, GameTypeCallbreak:
		return true
	}
	return false
}

// Rules captures the static rule set for one game type. Score and round
// thresholds are match configuration, not part of Rules.
type Rules struct {
	Passing        bool  // pre-round card passing phase
	Bidding        bool  // pre-round sequential bidding phase
	Trump          *Suit // nil for no-trump games
	RestrictedLead *Suit // suit that may not be led until broken
	BidMin         int
	BidMax         int
	LowScoreWins   bool
}

var (
	spades = SuitSpades
	hearts = SuitHearts
)

// RulesFor returns the rule set for a game type.
func RulesFor(gt GameType) Rules {
	switch gt {
	case GameTypeSpades:
		return Rules{Bidding: true, Trump: &spades, RestrictedLead: &spades, BidMin: 0, BidMax: 13}
	case GameTypeCallbreak:
		return Rules{Bidding: true, Trump: &spades, BidMin: 1, BidMax: 8}
	default: // hearts
		return Rules{Passing: true, RestrictedLead: &hearts, LowScoreWins: true}
	}
}
