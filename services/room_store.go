package services

import (
	"context"
	"errors"
	"sync"

	"slights/models"
)

// ErrNoSession is returned by actions that require a joined identity.
var ErrNoSession = errors.New("no active session")

// ErrNoRoomLoaded is returned by PickWinner before a snapshot is loaded.
var ErrNoRoomLoaded = errors.New("no room snapshot loaded")

// SoundPlayer receives cosmetic audio cues ("submit", "win"). Cues never
// affect gameplay.
type SoundPlayer interface {
	Play(sound string)
}

type nopSound struct{}

func (nopSound) Play(string) {}

// RoomStore is the client-side state container: one session identity plus the
// latest room snapshot, mutated only through the game actions below. Each
// action performs its key-value writes and then triggers a full reload, so
// views always render from a freshly assembled snapshot. Overlapping reloads
// are possible under polling; the last one to complete wins.
type RoomStore struct {
	svc    *RoomService
	sounds SoundPlayer

	mu      sync.RWMutex
	session models.Session
	room    *models.Room
}

func NewRoomStore(svc *RoomService, sounds SoundPlayer) *RoomStore {
	if sounds == nil {
		sounds = nopSound{}
	}
	return &RoomStore{svc: svc, sounds: sounds}
}

// Session returns the current client identity.
func (rs *RoomStore) Session() models.Session {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.session
}

// SetSession rebinds the client identity, e.g. when reconstructed from a
// route parameter. It does not validate membership in the room.
func (rs *RoomStore) SetSession(name, room string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.session = models.Session{Name: name, Room: NormalizeCode(room)}
}

// Snapshot returns the loaded room, or nil before the first successful load.
// The returned value is replaced wholesale on reload, never mutated in place.
func (rs *RoomStore) Snapshot() *models.Room {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.room
}

// Create initializes a new room with this client as creator and judge, binds
// the session, and loads the first snapshot.
func (rs *RoomStore) Create(ctx context.Context, code, alias string) error {
	normalized, err := rs.svc.CreateRoom(ctx, code, alias)
	if err != nil {
		return err
	}

	rs.SetSession(alias, normalized)
	return rs.Reload(ctx)
}

// Join adds this client to an existing room, binds the session, and loads a
// snapshot. Joining a room the client is already in changes nothing remotely.
func (rs *RoomStore) Join(ctx context.Context, code, alias string) error {
	normalized, err := rs.svc.JoinRoom(ctx, code, alias)
	if err != nil {
		return err
	}

	rs.SetSession(alias, normalized)
	return rs.Reload(ctx)
}

// Reload fetches a fresh snapshot and swaps it in as a single assignment. On
// failure the snapshot is cleared and the error is returned for the view to
// surface.
func (rs *RoomStore) Reload(ctx context.Context) error {
	session := rs.Session()
	if session.Room == "" {
		return ErrNoSession
	}

	room, err := rs.svc.LoadRoom(ctx, session.Room, session.Name)

	rs.mu.Lock()
	rs.room = room
	rs.mu.Unlock()

	return err
}

// SubmitCurse plays a card from this client's hand for the current round.
func (rs *RoomStore) SubmitCurse(ctx context.Context, curse string) error {
	session := rs.Session()
	if session.Room == "" || session.Name == "" {
		return ErrNoSession
	}

	if err := rs.svc.SubmitCurse(ctx, session.Room, session.Name, curse); err != nil {
		return err
	}
	if err := rs.Reload(ctx); err != nil {
		return err
	}

	rs.sounds.Play("submit")
	return nil
}

// RedrawHand swaps this client's entire hand for a fresh draw, forfeiting
// the round.
func (rs *RoomStore) RedrawHand(ctx context.Context) error {
	session := rs.Session()
	if session.Room == "" || session.Name == "" {
		return ErrNoSession
	}

	if err := rs.svc.RedrawHand(ctx, session.Room, session.Name); err != nil {
		return err
	}
	return rs.Reload(ctx)
}

// PickWinner settles the round using the currently loaded snapshot. Whether
// this client is actually the judge is only ever gated in the view layer.
func (rs *RoomStore) PickWinner(ctx context.Context, winner string) error {
	session := rs.Session()
	if session.Room == "" || session.Name == "" {
		return ErrNoSession
	}

	room := rs.Snapshot()
	if room == nil {
		return ErrNoRoomLoaded
	}

	if err := rs.svc.PickWinner(ctx, session.Room, room, winner); err != nil {
		return err
	}

	rs.sounds.Play("win")
	return rs.Reload(ctx)
}
