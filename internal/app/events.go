package app

import "github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"

// EventType identifies a notable state transition in the event stream.
type EventType string

const (
	EventMatchCreated   EventType = "match_created"
	EventPlayerJoined   EventType = "player_joined"
	EventPhaseChanged   EventType = "phase_changed"
	EventPassSubmitted  EventType = "pass_submitted"
	EventBidSubmitted   EventType = "bid_submitted"
	EventCardPlayed     EventType = "card_played"
	EventTrickCompleted EventType = "trick_completed"
	EventRoundEnded     EventType = "round_ended"
	EventMatchCompleted EventType = "match_completed"
	EventRewardsSettled EventType = "rewards_settled"
)

// Event is one immutable entry in the bounded per-match stream. Ids are
// per-match monotonic starting at 1; the stream keeps only the most recent
// entries and is a best-effort recent-history feed, not a durable log.
type Event struct {
	ID          int64     `json:"event_id"`
	Type        EventType `json:"type"`
	MatchID     string    `json:"match_id"`
	Revision    int64     `json:"revision"`
	TimestampMs int64     `json:"timestamp_ms"`
	ActorSeat   int       `json:"actor_seat"` // -1 when system-initiated
	Auto        bool      `json:"auto,omitempty"`
	Payload     any       `json:"payload,omitempty"`
}

// eventDraft is an event pending id/revision/timestamp assignment, collected
// while a mutation runs under the match lock.
type eventDraft struct {
	Type      EventType
	ActorSeat int
	Auto      bool
	Payload   any
}

// eventStream is the bounded per-match event buffer.
type eventStream struct {
	nextID int64
	events []Event
	cap    int
}

func newEventStream(cap int) *eventStream {
	return &eventStream{nextID: 1, cap: cap}
}

func (es *eventStream) append(ev Event) Event {
	ev.ID = es.nextID
	es.nextID++
	es.events = append(es.events, ev)
	if len(es.events) > es.cap {
		es.events = es.events[len(es.events)-es.cap:]
	}
	return ev
}

// since returns all retained events with id greater than the cursor, plus the
// latest assigned id.
func (es *eventStream) since(cursor int64) ([]Event, int64) {
	out := make([]Event, 0, len(es.events))
	for _, ev := range es.events {
		if ev.ID > cursor {
			out = append(out, ev)
		}
	}
	return out, es.nextID - 1
}

// Payloads carried by the event stream.

type PlayerJoinedPayload struct {
	Seat        int    `json:"seat"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type PhaseChangedPayload struct {
	From  domain.Phase `json:"from"`
	To    domain.Phase `json:"to"`
	Round int          `json:"round"`
}

type PassSubmittedPayload struct {
	Seat int `json:"seat"`
}

type BidSubmittedPayload struct {
	Seat int `json:"seat"`
	Bid  int `json:"bid"`
}

type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextTurn int         `json:"next_turn"`
}

type TrickCompletedPayload struct {
	Winner int                `json:"winner"`
	Points int                `json:"points"`
	Plays  []domain.TrickPlay `json:"plays"`
}

type RoundEndedPayload struct {
	Round       int    `json:"round"`
	RoundScores [4]int `json:"round_scores"`
	Scores      [4]int `json:"scores"`
}

type MatchCompletedPayload struct {
	Standings []int  `json:"standings"` // seats, best first
	Scores    [4]int `json:"scores"`
}

type RewardsSettledPayload struct {
	Rewards [4]int64 `json:"rewards"` // by seat
}
