package domain

import "sort"

// Phase is the lifecycle stage of a match.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhasePassing   Phase = "passing"
	PhaseBidding   Phase = "bidding"
	PhasePlaying   Phase = "playing"
	PhaseCompleted Phase = "completed"
)

// Status is the coarse match state advertised to lobby queries.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)

// Player holds the seat-level state for a participant. Seats are fixed for
// the lifetime of the match.
type Player struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	IsBot        bool   `json:"is_bot"`
	Disconnected bool   `json:"disconnected"`
	Coins        int64  `json:"coins"`
}

// PassingState tracks per-seat passing selections. Seat count is a fixed
// invariant, so fixed-size arrays are used rather than maps.
type PassingState struct {
	Direction  PassDirection `json:"direction"`
	Selections [4][]int      `json:"selections"`
	Submitted  [4]bool       `json:"submitted"`
}

// PhaseChange records a phase transition for event emission.
type PhaseChange struct {
	From Phase
	To   Phase
}

// PlayOutcome summarizes everything a single accepted play caused, so the
// caller can emit the intermediate transitions a before/after diff would miss.
type PlayOutcome struct {
	Trick          *CompletedTrick // non-nil when the play completed a trick
	RoundEnded     bool
	RoundScores    [4]int // per-seat score deltas applied at round end
	PhaseChange    *PhaseChange
	MatchCompleted bool
}

// Match is the aggregate root. All sub-engines operate on it by reference
// during one logical request and must leave every invariant satisfied before
// returning, including when an error aborts the mutation.
type Match struct {
	ID          string   `json:"match_id"`
	GameType    GameType `json:"game_type"`
	Revision    int64    `json:"revision"`
	Status      Status   `json:"status"`
	Phase       Phase    `json:"phase"`
	RoundNumber int      `json:"round_number"`
	Seed        int64    `json:"seed"`

	Players [4]Player `json:"players"`
	Hands   [4][]Card `json:"hands"`

	CurrentTrick []TrickPlay     `json:"current_trick"`
	LastTrick    *CompletedTrick `json:"last_trick,omitempty"`
	LeadSuit     *Suit           `json:"lead_suit,omitempty"`
	TrickLeader  int             `json:"trick_leader"`

	TurnIndex      int   `json:"turn_index"`
	TurnDeadlineMs int64 `json:"turn_deadline_ms"`

	Scores    [4]int    `json:"scores"`
	TricksWon [4]int    `json:"tricks_won"`
	Bids      [4]*int   `json:"bids"`

	HeartsBroken  bool         `json:"hearts_broken"`
	SpadesBroken  bool         `json:"spades_broken"`
	PlayedCardIDs map[int]bool `json:"played_card_ids"`
	Passing       PassingState `json:"passing"`

	// Match-end thresholds, fixed at creation from game configuration.
	TargetScore int `json:"target_score"`
	MaxRounds   int `json:"max_rounds"`

	RewardsPaid bool  `json:"rewards_paid"`
	CreatedAtMs int64 `json:"created_at_ms"`
}

// NewMatch creates a match in the waiting state. Seat 0 is the creator,
// seats 1 and 3 are bots, seat 2 is reserved for the joining opponent.
func NewMatch(id string, gt GameType, seed int64, creator Player, bots [2]Player, targetScore, maxRounds int) *Match {
	m := &Match{
		ID:          id,
		GameType:    gt,
		Revision:    1,
		Status:      StatusWaiting,
		Phase:       PhaseWaiting,
		Seed:        seed,
		TargetScore: targetScore,
		MaxRounds:   maxRounds,
	}
	m.Players[0] = creator
	m.Players[1] = bots[0]
	m.Players[3] = bots[1]
	m.PlayedCardIDs = make(map[int]bool)
	return m
}

// OpenSeat reports whether the join target seat is still unclaimed.
func (m *Match) OpenSeat() bool {
	return m.Players[2].UserID == ""
}

// SeatOf returns the seat index for a user id, or -1.
func (m *Match) SeatOf(userID string) int {
	for i, p := range m.Players {
		if p.UserID != "" && p.UserID == userID {
			return i
		}
	}
	return -1
}

// Join seats the opponent at seat 2 and starts the first round.
func (m *Match) Join(p Player) (int, *PhaseChange, error) {
	if m.Phase != PhaseWaiting {
		return -1, nil, ErrInvalidPhase
	}
	if !m.OpenSeat() {
		return -1, nil, ErrMatchFull
	}
	m.Players[2] = p
	m.RoundNumber = 1
	pc := m.startRound()
	return 2, pc, nil
}

// roundSeed derives the deal seed for the current round from the match seed.
func (m *Match) roundSeed() int64 {
	return m.Seed + int64(m.RoundNumber-1)
}

// startRound deals and enters the opening phase for the current round.
func (m *Match) startRound() *PhaseChange {
	from := m.Phase

	m.Hands = Deal(m.GameType, m.roundSeed())
	for i := range m.Hands {
		SortHand(m.Hands[i])
	}
	m.CurrentTrick = nil
	m.LastTrick = nil
	m.LeadSuit = nil
	m.HeartsBroken = false
	m.SpadesBroken = false
	m.PlayedCardIDs = make(map[int]bool)
	m.TricksWon = [4]int{}
	m.Bids = [4]*int{}
	m.Passing = PassingState{}
	m.Status = StatusPlaying

	rules := RulesFor(m.GameType)
	dir := PassDirectionForRound(m.RoundNumber)
	switch {
	case rules.Passing && dir != PassNone:
		m.Phase = PhasePassing
		m.Passing.Direction = dir
		m.TurnIndex = 0
	case rules.Bidding:
		m.Phase = PhaseBidding
		m.TurnIndex = 0
	default:
		// Passing round with direction "none" skips straight to playing.
		m.enterPlaying()
	}
	return &PhaseChange{From: from, To: m.Phase}
}

// enterPlaying sets the first leader for the round. In the passing game the
// holder of the two of clubs leads; in the bidding games the first bidder
// (seat 0, no dealer is tracked) leads.
func (m *Match) enterPlaying() {
	m.Phase = PhasePlaying
	leader := 0
	if m.GameType == GameTypeHearts {
		if s := m.seatHolding(TwoOfClubsID); s >= 0 {
			leader = s
		}
	}
	m.TrickLeader = leader
	m.TurnIndex = leader
}

func (m *Match) seatHolding(cardID int) int {
	for seat, hand := range m.Hands {
		for _, c := range hand {
			if c.ID == cardID {
				return seat
			}
		}
	}
	return -1
}

// SubmitPass records a seat's passing selection. Submitting again before
// lock-in replaces the previous selection. When all four seats have
// submitted, passing finalizes and play begins.
func (m *Match) SubmitPass(seat int, cardIDs []int) (bool, *PhaseChange, error) {
	if m.Phase != PhasePassing {
		return false, nil, ErrInvalidPhase
	}
	if len(cardIDs) != 3 {
		return false, nil, ErrInvalidCardSelection
	}
	seen := make(map[int]bool, 3)
	for _, id := range cardIDs {
		if seen[id] {
			return false, nil, ErrInvalidCardSelection
		}
		seen[id] = true
		if m.cardInHand(seat, id) < 0 {
			return false, nil, ErrInvalidCardSelection
		}
	}

	m.Passing.Selections[seat] = append([]int{}, cardIDs...)
	m.Passing.Submitted[seat] = true

	for _, done := range m.Passing.Submitted {
		if !done {
			return false, nil, nil
		}
	}
	pc := m.finalizePassing()
	return true, pc, nil
}

// finalizePassing moves the selected cards between hands per the round's
// direction, re-sorts for deterministic display, and enters playing.
func (m *Match) finalizePassing() *PhaseChange {
	from := m.Phase
	offset := m.Passing.Direction.Offset()
	if offset != 0 {
		var outgoing [4][]Card
		for seat := 0; seat < 4; seat++ {
			for _, id := range m.Passing.Selections[seat] {
				idx := m.cardInHand(seat, id)
				outgoing[seat] = append(outgoing[seat], m.Hands[seat][idx])
				m.Hands[seat] = append(m.Hands[seat][:idx], m.Hands[seat][idx+1:]...)
			}
		}
		for seat := 0; seat < 4; seat++ {
			recipient := (seat + offset) % 4
			m.Hands[recipient] = append(m.Hands[recipient], outgoing[seat]...)
		}
		for i := range m.Hands {
			SortHand(m.Hands[i])
		}
	}
	m.enterPlaying()
	return &PhaseChange{From: from, To: m.Phase}
}

// SubmitBid records a bid for the seat on turn. Bidding is strictly
// sequential; play begins once all four seats have bid.
func (m *Match) SubmitBid(seat, bid int) (*PhaseChange, error) {
	if m.Phase != PhaseBidding {
		return nil, ErrInvalidPhase
	}
	if seat != m.TurnIndex {
		return nil, ErrOutOfTurn
	}
	rules := RulesFor(m.GameType)
	if bid < rules.BidMin || bid > rules.BidMax {
		return nil, ErrInvalidBid
	}
	b := bid
	m.Bids[seat] = &b

	for _, v := range m.Bids {
		if v == nil {
			m.TurnIndex = (m.TurnIndex + 1) % 4
			return nil, nil
		}
	}
	from := m.Phase
	m.enterPlaying()
	return &PhaseChange{From: from, To: m.Phase}, nil
}

// PlayCard validates and applies one play for the seat on turn, resolving the
// trick and closing the round when the play completes them.
func (m *Match) PlayCard(seat, cardID int) (PlayOutcome, error) {
	var out PlayOutcome
	if m.Phase != PhasePlaying {
		return out, ErrInvalidPhase
	}
	if seat != m.TurnIndex {
		return out, ErrOutOfTurn
	}
	idx := m.cardInHand(seat, cardID)
	if idx < 0 || m.PlayedCardIDs[cardID] {
		return out, ErrInvalidCardSelection
	}
	card := m.Hands[seat][idx]
	if !containsCardID(m.LegalPlays(seat), cardID) {
		return out, ErrInvalidCardSelection
	}

	m.Hands[seat] = append(m.Hands[seat][:idx], m.Hands[seat][idx+1:]...)
	m.PlayedCardIDs[cardID] = true
	m.CurrentTrick = append(m.CurrentTrick, TrickPlay{Seat: seat, Card: card})

	if len(m.CurrentTrick) == 1 {
		lead := card.Suit
		m.LeadSuit = &lead
	} else if card.Suit != *m.LeadSuit {
		// Off-suit discard breaks the restricted suit for the round.
		m.markBroken(card.Suit)
	}

	if len(m.CurrentTrick) < 4 {
		m.TurnIndex = (m.TurnIndex + 1) % 4
		return out, nil
	}

	// A four-card trick is transient: it is resolved within the same
	// mutation and never observed as persisted state.
	out.Trick = m.resolveTrick()

	if len(m.Hands[0])+len(m.Hands[1])+len(m.Hands[2])+len(m.Hands[3]) == 0 {
		out.RoundEnded = true
		out.RoundScores, out.PhaseChange, out.MatchCompleted = m.finishRound()
	}
	return out, nil
}

func (m *Match) resolveTrick() *CompletedTrick {
	rules := RulesFor(m.GameType)
	winIdx := WinningPlay(m.CurrentTrick, rules.Trump)
	winner := m.CurrentTrick[winIdx].Seat
	pts := TrickPoints(m.CurrentTrick)

	m.Scores[winner] += pts
	m.TricksWon[winner]++
	ct := &CompletedTrick{
		Plays:  append([]TrickPlay{}, m.CurrentTrick...),
		Winner: winner,
		Points: pts,
	}
	m.LastTrick = ct
	m.CurrentTrick = nil
	m.LeadSuit = nil
	m.TrickLeader = winner
	m.TurnIndex = winner
	return ct
}

// finishRound applies round scoring and either advances to the next round or
// completes the match per the configured thresholds.
func (m *Match) finishRound() ([4]int, *PhaseChange, bool) {
	var deltas [4]int
	rules := RulesFor(m.GameType)
	if rules.Bidding {
		// Made bid: ten points per bid trick plus one per overtrick.
		// Missed bid: minus ten per bid trick.
		for seat := 0; seat < 4; seat++ {
			bid := *m.Bids[seat]
			if m.TricksWon[seat] >= bid {
				deltas[seat] = bid*10 + (m.TricksWon[seat] - bid)
			} else {
				deltas[seat] = -bid * 10
			}
			m.Scores[seat] += deltas[seat]
		}
	}

	if m.matchOver() {
		from := m.Phase
		m.Phase = PhaseCompleted
		m.Status = StatusCompleted
		return deltas, &PhaseChange{From: from, To: m.Phase}, true
	}
	m.RoundNumber++
	return deltas, m.startRound(), false
}

func (m *Match) matchOver() bool {
	if RulesFor(m.GameType).Bidding {
		return m.RoundNumber >= m.MaxRounds
	}
	for _, s := range m.Scores {
		if s >= m.TargetScore {
			return true
		}
	}
	return false
}

// RankedSeats returns seat indexes ordered best first. The bidding games rank
// by descending score; the penalty-point game by ascending. Ties break by
// seat index.
func (m *Match) RankedSeats() []int {
	seats := []int{0, 1, 2, 3}
	low := RulesFor(m.GameType).LowScoreWins
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if m.Scores[a] == m.Scores[b] {
			return a < b
		}
		if low {
			return m.Scores[a] < m.Scores[b]
		}
		return m.Scores[a] > m.Scores[b]
	})
	return seats
}

func (m *Match) cardInHand(seat, cardID int) int {
	for i, c := range m.Hands[seat] {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func containsCardID(cards []Card, id int) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the match, safe to hand to callers outside the
// per-match write lock.
func (m *Match) Clone() *Match {
	cp := *m
	for i := range m.Hands {
		cp.Hands[i] = append([]Card{}, m.Hands[i]...)
	}
	cp.CurrentTrick = append([]TrickPlay{}, m.CurrentTrick...)
	if m.LastTrick != nil {
		lt := *m.LastTrick
		lt.Plays = append([]TrickPlay{}, m.LastTrick.Plays...)
		cp.LastTrick = &lt
	}
	if m.LeadSuit != nil {
		ls := *m.LeadSuit
		cp.LeadSuit = &ls
	}
	for i, b := range m.Bids {
		if b != nil {
			v := *b
			cp.Bids[i] = &v
		}
	}
	cp.PlayedCardIDs = make(map[int]bool, len(m.PlayedCardIDs))
	for id, v := range m.PlayedCardIDs {
		cp.PlayedCardIDs[id] = v
	}
	for i := range m.Passing.Selections {
		cp.Passing.Selections[i] = append([]int{}, m.Passing.Selections[i]...)
	}
	return &cp
}
