package services

import (
	"context"
	"log"
	"sync"
	"time"

	"slights/models"
)

// RevealPhase is the winner-overlay state: idle until a new lastWinner record
// appears, revealing while the overlay is up, scoreboard until dismissed.
type RevealPhase int

const (
	RevealIdle RevealPhase = iota
	RevealShowing
	RevealScoreboard
)

func (p RevealPhase) String() string {
	switch p {
	case RevealShowing:
		return "revealing"
	case RevealScoreboard:
		return "scoreboard"
	default:
		return "idle"
	}
}

// Watcher runs the two client polling loops: a periodic full snapshot reload
// and a faster check of the transient lastWinner record. It also owns the
// reveal state machine (idle -> revealing -> scoreboard -> idle).
//
// Exactly one party is responsible for clearing the lastWinner key: the
// judge's watcher deletes it when the scoreboard is dismissed. Everyone else
// only tracks and displays.
type Watcher struct {
	store  *RoomStore
	sounds SoundPlayer

	roomPoll      time.Duration
	winnerPoll    time.Duration
	revealTimeout time.Duration

	mu      sync.Mutex
	phase   RevealPhase
	current *models.LastWinner
	// seen is the last record processed. It survives dismissal, so a record
	// can never re-trigger its own overlay; it clears only when the record
	// disappears from the store.
	seen    *models.LastWinner
	shownAt time.Time
}

func NewWatcher(store *RoomStore, sounds SoundPlayer, roomPoll, winnerPoll, revealTimeout time.Duration) *Watcher {
	if sounds == nil {
		sounds = nopSound{}
	}
	return &Watcher{
		store:         store,
		sounds:        sounds,
		roomPoll:      roomPoll,
		winnerPoll:    winnerPoll,
		revealTimeout: revealTimeout,
	}
}

// Run polls until ctx is canceled. Poll failures are logged and the loops
// continue; in-flight reloads are not canceled when the next tick fires, so
// the last reload to complete wins.
func (w *Watcher) Run(ctx context.Context) {
	roomTicker := time.NewTicker(w.roomPoll)
	defer roomTicker.Stop()

	winnerTicker := time.NewTicker(w.winnerPoll)
	defer winnerTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-roomTicker.C:
			if err := w.store.Reload(ctx); err != nil {
				log.Printf("Room poll failed: %v", err)
			}
		case <-winnerTicker.C:
			w.checkWinner(ctx)
		}
	}
}

// checkWinner polls the lastWinner record and advances the state machine. A
// reveal that is never dismissed manually auto-advances to the scoreboard
// after the reveal timeout.
func (w *Watcher) checkWinner(ctx context.Context) {
	session := w.store.Session()
	if session.Room == "" {
		return
	}

	record := w.store.svc.LastWinner(ctx, session.Room)

	w.mu.Lock()
	defer w.mu.Unlock()

	// A record is new when its identity differs from the last one processed,
	// not just its winner name: back-to-back wins by the same player carry a
	// different curse and must each reveal.
	if record == nil {
		w.seen = nil
	} else if w.seen == nil || *record != *w.seen {
		w.seen = record
		w.current = record
		w.phase = RevealShowing
		w.shownAt = time.Now()
		w.sounds.Play("win")
	}

	if w.phase == RevealShowing && w.revealTimeout > 0 && time.Since(w.shownAt) >= w.revealTimeout {
		w.phase = RevealScoreboard
	}
}

// Phase returns the current reveal phase.
func (w *Watcher) Phase() RevealPhase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Winner returns the record being revealed, or nil when idle.
func (w *Watcher) Winner() *models.LastWinner {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// DismissReveal closes the winner overlay and shows the scoreboard.
func (w *Watcher) DismissReveal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == RevealShowing {
		w.phase = RevealScoreboard
	}
}

// DismissScoreboard returns to idle. The processed record stays tracked, so
// live polling cannot re-reveal it while the key lingers in the store; a
// fresh reveal needs a record with a different identity. If this client is
// the judge, the transient lastWinner key is cleared here.
func (w *Watcher) DismissScoreboard(ctx context.Context) {
	w.mu.Lock()
	if w.phase != RevealScoreboard {
		w.mu.Unlock()
		return
	}
	w.phase = RevealIdle
	w.current = nil
	w.mu.Unlock()

	session := w.store.Session()
	room := w.store.Snapshot()
	if room != nil && session.Name != "" && room.Judge == session.Name {
		if err := w.store.svc.ClearLastWinner(ctx, session.Room); err != nil {
			log.Printf("Failed to clear winner record for room %s: %v", session.Room, err)
		}
	}
}
