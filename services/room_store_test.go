package services

import (
	"context"
	"sync"
	"testing"

	"slights/cards"
	"slights/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type soundRecorder struct {
	mu     sync.Mutex
	played []string
}

func (r *soundRecorder) Play(sound string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, sound)
}

func (r *soundRecorder) sounds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.played...)
}

func TestRoomStoreCreateLoadsSnapshot(t *testing.T) {
	svc := NewRoomService(kv.NewMemoryStore())
	rs := NewRoomStore(svc, nil)
	ctx := context.Background()

	require.NoError(t, rs.Create(ctx, "party", "Amy"))

	assert.Equal(t, "Amy", rs.Session().Name)
	assert.Equal(t, "PARTY", rs.Session().Room)

	room := rs.Snapshot()
	require.NotNil(t, room)
	assert.Equal(t, "Amy", room.Judge)
	assert.Equal(t, []string{"Amy"}, room.Players)
	assert.Equal(t, map[string]int{"Amy": 0}, room.Scores)
	assert.Equal(t, 1, room.Round)
	assert.Len(t, room.Hands["Amy"], cards.HandSize)
}

func TestRoomStoreActionsRequireSession(t *testing.T) {
	rs := NewRoomStore(NewRoomService(kv.NewMemoryStore()), nil)
	ctx := context.Background()

	assert.ErrorIs(t, rs.Reload(ctx), ErrNoSession)
	assert.ErrorIs(t, rs.SubmitCurse(ctx, "curse"), ErrNoSession)
	assert.ErrorIs(t, rs.RedrawHand(ctx), ErrNoSession)
	assert.ErrorIs(t, rs.PickWinner(ctx, "Bo"), ErrNoSession)
}

func TestRoomStorePickWinnerNeedsSnapshot(t *testing.T) {
	rs := NewRoomStore(NewRoomService(kv.NewMemoryStore()), nil)
	rs.SetSession("Amy", "PARTY")

	assert.ErrorIs(t, rs.PickWinner(context.Background(), "Bo"), ErrNoRoomLoaded)
}

func TestRoomStoreReloadFailureClearsSnapshot(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewRoomService(store)
	rs := NewRoomStore(svc, nil)
	ctx := context.Background()

	require.NoError(t, rs.Create(ctx, "PARTY", "Amy"))
	require.NotNil(t, rs.Snapshot())

	_, err := store.Delete(ctx, "room:PARTY:slight")
	require.NoError(t, err)

	assert.ErrorIs(t, rs.Reload(ctx), ErrIncompleteRoom)
	assert.Nil(t, rs.Snapshot())
}

// A full round: Amy creates PARTY, Bo joins, Bo
// submits, Amy picks Bo; scores, round, judge, and submissions all settle.
func TestRoomStoreFullRound(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewRoomService(store)
	sounds := &soundRecorder{}

	amy := NewRoomStore(svc, sounds)
	bo := NewRoomStore(svc, sounds)
	ctx := context.Background()

	require.NoError(t, amy.Create(ctx, "PARTY", "Amy"))
	require.NoError(t, bo.Join(ctx, "party", "Bo"))

	room := bo.Snapshot()
	require.NotNil(t, room)
	assert.Equal(t, []string{"Amy", "Bo"}, room.Players)
	assert.Equal(t, map[string]int{"Amy": 0, "Bo": 0}, room.Scores)

	played := room.Hands["Bo"][2]
	require.NoError(t, bo.SubmitCurse(ctx, played))
	assert.Equal(t, []string{"submit"}, sounds.sounds())

	require.NoError(t, amy.Reload(ctx))
	assert.Equal(t, map[string]string{"Bo": played}, amy.Snapshot().Submissions)

	require.NoError(t, amy.PickWinner(ctx, "Bo"))

	after := amy.Snapshot()
	require.NotNil(t, after)
	assert.Equal(t, map[string]int{"Amy": 0, "Bo": 1}, after.Scores)
	assert.Equal(t, 2, after.Round)
	assert.Equal(t, "Bo", after.Judge)
	assert.Empty(t, after.Submissions)
	assert.Equal(t, []string{"submit", "win"}, sounds.sounds())

	record := svc.LastWinner(ctx, "PARTY")
	require.NotNil(t, record)
	assert.Equal(t, "Bo", record.Winner)
	assert.Equal(t, played, record.Curse)
}
