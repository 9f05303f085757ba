package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"matchup/internal/events"
	"matchup/internal/logging"
	"matchup/internal/models"
	"matchup/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchPrependsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	match, err := f.matches.CreateMatch(ctx, CreateMatchRequest{
		OrganizerID:       "org1",
		Title:             "  Tuesday 5v5 ",
		FieldID:           "field1",
		PerPlayerFeeCents: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, match.Status)
	assert.Equal(t, 0, match.ConfirmedCount)
	assert.Equal(t, 14, match.MaxPlayers)
	assert.Equal(t, "Tuesday 5v5", match.Title)
	assert.Equal(t, fixedNow, match.ScheduledAt)
	assert.NotEmpty(t, match.ID)

	listed, err := f.matches.ListMatchesForField(ctx, "field1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, match.ID, listed[0].ID)
	assert.Equal(t, "m1", listed[1].ID)
	assert.Equal(t, []string{events.MatchCreated}, f.events.types())
}

func TestCreateMatchUsesScheduledTime(t *testing.T) {
	f := newFixture(t)
	at := fixedNow.Add(48 * time.Hour)
	match, err := f.matches.CreateMatch(context.Background(), CreateMatchRequest{
		Title: "Later", FieldID: "field2", MaxPlayers: 10, ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, at, match.ScheduledAt)
	assert.Equal(t, 10, match.MaxPlayers)
}

func TestCreateMatchValidation(t *testing.T) {
	cases := []struct {
		name string
		req  CreateMatchRequest
		want error
	}{
		{"empty title", CreateMatchRequest{Title: "", FieldID: "field1"}, ErrEmptyTitle},
		{"blank title", CreateMatchRequest{Title: "   ", FieldID: "field1"}, ErrEmptyTitle},
		{"negative fee", CreateMatchRequest{Title: "x", FieldID: "field1", PerPlayerFeeCents: -1}, ErrInvalidFee},
		{"negative max players", CreateMatchRequest{Title: "x", FieldID: "field1", MaxPlayers: -2}, ErrInvalidMaxPlayers},
		{"unknown field", CreateMatchRequest{Title: "x", FieldID: "nope"}, ErrFieldNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			_, err := f.matches.CreateMatch(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)

			all, err := f.matches.ListMatches(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)
			assert.Empty(t, f.events.types())
		})
	}
}

func TestConfirmAndPayCreditsWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.matches.ConfirmAndPay(ctx, "m1", "player1")
	require.NoError(t, err)
	assert.False(t, result.AlreadyConfirmed)
	assert.Equal(t, 7, result.Match.ConfirmedCount)

	wallet, err := f.ledger.GetWallet(ctx, "field1")
	require.NoError(t, err)
	assert.Equal(t, int64(25700), wallet.BalanceCents)
	assert.Equal(t, int64(80700), wallet.TotalEarnedCents)
	assert.Equal(t, int64(3000), wallet.TotalFeesCents)

	attendees, err := f.matches.ListAttendees(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, int64(700), attendees[0].PaidCents)
	assert.Equal(t, []string{events.MatchConfirmed, events.WalletUpdated}, f.events.types())
}

func TestConfirmAndPayIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.matches.ConfirmAndPay(ctx, "m1", "player1")
	require.NoError(t, err)
	before, err := f.ledger.GetWallet(ctx, "field1")
	require.NoError(t, err)

	result, err := f.matches.ConfirmAndPay(ctx, "m1", "player1")
	require.NoError(t, err)
	assert.True(t, result.AlreadyConfirmed)
	assert.Equal(t, 7, result.Match.ConfirmedCount)

	after, err := f.ledger.GetWallet(ctx, "field1")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	attendees, err := f.matches.ListAttendees(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
	assert.Len(t, f.events.types(), 2)
}

func TestConfirmAndPayGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.matches.ConfirmAndPay(ctx, "ghost", "player1")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	full, err := f.matches.CreateMatch(ctx, CreateMatchRequest{Title: "Tiny", FieldID: "field1", MaxPlayers: 1, PerPlayerFeeCents: 100})
	require.NoError(t, err)
	_, err = f.matches.ConfirmAndPay(ctx, full.ID, "player1")
	require.NoError(t, err)
	_, err = f.matches.ConfirmAndPay(ctx, full.ID, "player2")
	assert.ErrorIs(t, err, ErrMatchFull)

	_, err = f.matches.UpdateMatchStatus(ctx, "org1", "m2", models.MatchCompleted)
	require.NoError(t, err)
	_, err = f.matches.ConfirmAndPay(ctx, "m2", "player1")
	assert.ErrorIs(t, err, ErrMatchClosed)
}

func TestConfirmAndPayFreeMatchSkipsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	match, err := f.matches.CreateMatch(ctx, CreateMatchRequest{Title: "Free", FieldID: "field2"})
	require.NoError(t, err)
	entriesBefore, err := f.ledger.ListLedger(ctx, "field2")
	require.NoError(t, err)

	_, err = f.matches.ConfirmAndPay(ctx, match.ID, "player1")
	require.NoError(t, err)

	entriesAfter, err := f.ledger.ListLedger(ctx, "field2")
	require.NoError(t, err)
	assert.Len(t, entriesAfter, len(entriesBefore))
}

func TestUpdateMatchStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	match, err := f.matches.UpdateMatchStatus(ctx, "org1", "m1", models.MatchConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.MatchConfirmed, match.Status)

	_, err = f.matches.UpdateMatchStatus(ctx, "org1", "m1", models.MatchPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.matches.UpdateMatchStatus(ctx, "org1", "m1", models.MatchStatus("cancelled"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.matches.UpdateMatchStatus(ctx, "org1", "ghost", models.MatchConfirmed)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchServiceDoesNotPublishOnFailedCommit(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	pub := &recordingPublisher{}
	svc := NewMatchService(failingStore{Store: f.store, err: boom}, pub, logging.Discard(), 0)

	_, err := svc.CreateMatch(context.Background(), CreateMatchRequest{Title: "x", FieldID: "field1"})
	assert.ErrorIs(t, err, boom)
	_, err = svc.ConfirmAndPay(context.Background(), "m1", "p1")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.types())
}

func TestConfirmAndPayLosingDuplicateInsertIsAlreadyConfirmed(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	raced := failingStore{Store: f.store, err: errors.Join(store.ErrDuplicate, errors.New("unique violation"))}
	svc := NewMatchService(raced, pub, logging.Discard(), 0)

	result, err := svc.ConfirmAndPay(context.Background(), "m1", "p1")
	require.NoError(t, err)
	assert.True(t, result.AlreadyConfirmed)
	assert.Equal(t, "m1", result.Match.ID)
	assert.Empty(t, pub.types())
}
