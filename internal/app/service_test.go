package app

import (
	"context"
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/config"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/ports"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/store"
)

type fakeEconomy struct {
	calls   int
	updates []ports.WalletUpdate
	err     error
}

func (f *fakeEconomy) GetBalance(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeEconomy) UpdateBalances(_ context.Context, updates []ports.WalletUpdate) error {
	f.calls++
	f.updates = append(f.updates, updates...)
	return f.err
}

type fakeSink struct {
	writes int
	err    error
}

func (f *fakeSink) Name() string { return "fake" }

func (f *fakeSink) Write(context.Context, *domain.Match) error {
	f.writes++
	return f.err
}

type fixture struct {
	svc   *Service
	clock *quartz.Mock
	econ  *fakeEconomy
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		clock: quartz.NewMock(t),
		econ:  &fakeEconomy{},
	}
	opts = append([]Option{WithClock(f.clock), WithEconomy(f.econ)}, opts...)
	f.svc = NewService(store.NewMemory(), config.Default(), zap.NewNop(), opts...)
	return f
}

func TestCreateMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	delta, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)

	assert.Equal(t, int64(1), delta.Revision)
	assert.Equal(t, domain.PhaseWaiting, delta.State.Phase)
	assert.Equal(t, "u1", delta.State.Players[0].UserID)
	assert.True(t, delta.State.Players[1].IsBot)
	assert.True(t, delta.State.Players[3].IsBot)
	assert.Equal(t, int64(0), delta.State.TurnDeadlineMs)

	page, err := f.svc.Subscribe(ctx, delta.MatchID, 0)
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, EventMatchCreated, page.Events[0].Type)
}

func TestCreateMatchUnknownGameType(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateMatch(context.Background(), domain.GameType("bridge"), "u1", "Alice")
	assert.ErrorIs(t, err, domain.ErrUnknownGameType)
}

func TestJoinStartsRound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)

	joined, err := f.svc.JoinMatch(ctx, created.MatchID, created.Revision, "u2", "Bob")
	require.NoError(t, err)

	assert.Equal(t, int64(2), joined.Revision)
	assert.Equal(t, domain.PhaseBidding, joined.State.Phase)
	assert.Equal(t, "u2", joined.State.Players[2].UserID)
	assert.Greater(t, joined.State.TurnDeadlineMs, int64(0))

	page, err := f.svc.Subscribe(ctx, created.MatchID, 0)
	require.NoError(t, err)
	var types []EventType
	for _, ev := range page.Events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{EventMatchCreated, EventPlayerJoined, EventPhaseChanged}, types)
}

func TestRevisionConflictLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)

	_, err = f.svc.JoinMatch(ctx, created.MatchID, created.Revision+5, "u2", "Bob")
	assert.ErrorIs(t, err, domain.ErrRevisionConflict)

	snap, err := f.svc.Snapshot(ctx, created.MatchID)
	require.NoError(t, err)
	assert.Equal(t, created.Revision, snap.Revision)
	assert.Equal(t, domain.PhaseWaiting, snap.State.Phase)
}

func TestRevisionMonotonicity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	delta, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)
	rev := delta.Revision

	delta, err = f.svc.JoinMatch(ctx, delta.MatchID, rev, "u2", "Bob")
	require.NoError(t, err)
	require.Equal(t, rev+1, delta.Revision)
	rev = delta.Revision

	for seat := 0; seat < 4; seat++ {
		// A rejected action must not consume a revision.
		_, err = f.svc.SubmitBid(ctx, delta.MatchID, rev, seat, 99)
		require.ErrorIs(t, err, domain.ErrInvalidBid)

		delta, err = f.svc.SubmitBid(ctx, delta.MatchID, rev, seat, 3)
		require.NoError(t, err)
		require.Equal(t, rev+1, delta.Revision)
		rev = delta.Revision
	}
	assert.Equal(t, domain.PhasePlaying, delta.State.Phase)
}

func TestSubmitMoveRejectsBadSeat(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SubmitMove(context.Background(), "whatever", 1, 4, 0)
	assert.ErrorIs(t, err, domain.ErrOutOfTurn)
}

func TestFindMatchPairsByGameType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, seat, err := f.svc.FindMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 0, seat)

	second, seat, err := f.svc.FindMatch(ctx, domain.GameTypeSpades, "u2", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, seat)
	assert.Equal(t, first.MatchID, second.MatchID)
	assert.Equal(t, domain.PhaseBidding, second.State.Phase)

	third, seat, err := f.svc.FindMatch(ctx, domain.GameTypeHearts, "u3", "Cara")
	require.NoError(t, err)
	assert.Equal(t, 0, seat)
	assert.NotEqual(t, first.MatchID, third.MatchID)
}

func TestSubscribeCursor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMatch(ctx, domain.GameTypeHearts, "u1", "Alice")
	require.NoError(t, err)
	_, err = f.svc.JoinMatch(ctx, created.MatchID, created.Revision, "u2", "Bob")
	require.NoError(t, err)

	page, err := f.svc.Subscribe(ctx, created.MatchID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, page.Events)
	for i := 1; i < len(page.Events); i++ {
		assert.Greater(t, page.Events[i].ID, page.Events[i-1].ID)
	}
	assert.Equal(t, page.Events[len(page.Events)-1].ID, page.LatestEventID)

	caughtUp, err := f.svc.Subscribe(ctx, created.MatchID, page.LatestEventID)
	require.NoError(t, err)
	assert.Empty(t, caughtUp.Events)
	assert.Equal(t, page.LatestEventID, caughtUp.LatestEventID)

	_, err = f.svc.Subscribe(ctx, "no-such-match", 0)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestSinkFailureDoesNotBlockActions(t *testing.T) {
	sink := &fakeSink{err: errors.New("storage down")}
	f := newFixture(t, WithSinks(sink))
	ctx := context.Background()

	created, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)
	_, err = f.svc.JoinMatch(ctx, created.MatchID, created.Revision, "u2", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, sink.writes)
}

func TestEndMatchSettlesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	matchID := completedMatch(t, f, domain.GameTypeSpades)

	result, err := f.svc.EndMatch(ctx, matchID)
	require.NoError(t, err)
	require.Len(t, result.Standings, 4)

	table := config.Default().RewardTable
	for pos, seat := range result.Standings {
		assert.Equal(t, table[pos], result.Rewards[seat], "seat %d at position %d", seat, pos)
	}

	// Only the two human seats receive wallet updates.
	assert.Equal(t, 1, f.econ.calls)
	require.Len(t, f.econ.updates, 2)
	for _, u := range f.econ.updates {
		assert.Contains(t, []string{"u1", "u2"}, u.UserID)
		assert.Equal(t, matchID, u.Metadata["match_id"])
	}

	again, err := f.svc.EndMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, result, again)
	assert.Equal(t, 1, f.econ.calls, "settlement paid twice")
}

func TestEndMatchRequiresCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMatch(ctx, domain.GameTypeSpades, "u1", "Alice")
	require.NoError(t, err)
	_, err = f.svc.EndMatch(ctx, created.MatchID)
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}
