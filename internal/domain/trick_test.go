package domain

import "testing"

func tc(s Suit, value, points int) Card {
	return Card{ID: CardID(s, value), Suit: s, Value: value, Points: points}
}

func TestWinningPlay(t *testing.T) {
	spades := SuitSpades

	tests := []struct {
		name  string
		plays []TrickPlay
		trump *Suit
		want  int
	}{
		{
			name: "low trump beats high off-suit",
			plays: []TrickPlay{
				{Seat: 0, Card: tc(SuitClubs, 2, 0)},
				{Seat: 1, Card: tc(SuitSpades, 5, 0)},
				{Seat: 2, Card: tc(SuitClubs, 13, 0)},
				{Seat: 3, Card: tc(SuitDiamonds, 14, 0)},
			},
			trump: &spades,
			want:  1,
		},
		{
			name: "highest of lead suit wins without trump",
			plays: []TrickPlay{
				{Seat: 2, Card: tc(SuitDiamonds, 7, 0)},
				{Seat: 3, Card: tc(SuitDiamonds, 10, 0)},
				{Seat: 0, Card: tc(SuitHearts, 14, 1)},
				{Seat: 1, Card: tc(SuitDiamonds, 9, 0)},
			},
			trump: nil,
			want:  1,
		},
		{
			name: "off-suit ace never wins without trump",
			plays: []TrickPlay{
				{Seat: 1, Card: tc(SuitClubs, 3, 0)},
				{Seat: 2, Card: tc(SuitSpades, 14, 0)},
				{Seat: 3, Card: tc(SuitHearts, 14, 1)},
				{Seat: 0, Card: tc(SuitClubs, 2, 0)},
			},
			trump: nil,
			want:  0,
		},
		{
			name: "higher trump beats lower trump",
			plays: []TrickPlay{
				{Seat: 0, Card: tc(SuitHearts, 8, 0)},
				{Seat: 1, Card: tc(SuitSpades, 4, 0)},
				{Seat: 2, Card: tc(SuitSpades, 11, 0)},
				{Seat: 3, Card: tc(SuitHearts, 13, 0)},
			},
			trump: &spades,
			want:  2,
		},
		{
			name: "lead holds when nobody follows or trumps",
			plays: []TrickPlay{
				{Seat: 3, Card: tc(SuitSpades, 6, 0)},
				{Seat: 0, Card: tc(SuitHearts, 12, 1)},
				{Seat: 1, Card: tc(SuitDiamonds, 13, 0)},
				{Seat: 2, Card: tc(SuitHearts, 2, 1)},
			},
			trump: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WinningPlay(tt.plays, tt.trump)
			if got != tt.want {
				t.Fatalf("winner index = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrickPoints(t *testing.T) {
	plays := []TrickPlay{
		{Seat: 0, Card: tc(SuitHearts, 4, 1)},
		{Seat: 1, Card: tc(SuitSpades, 12, 13)},
		{Seat: 2, Card: tc(SuitClubs, 9, 0)},
		{Seat: 3, Card: tc(SuitHearts, 11, 1)},
	}
	if got := TrickPoints(plays); got != 15 {
		t.Fatalf("trick points = %d, want 15", got)
	}
}
