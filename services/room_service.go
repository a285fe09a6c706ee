package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"slights/cards"
	"slights/kv"
	"slights/models"
)

var (
	// ErrRoomNotFound means the room's player list or scores were absent when
	// joining. Indistinguishable from a transient store outage at this layer.
	ErrRoomNotFound = errors.New("room not found")

	// ErrIncompleteRoom means one or more of the five room keys was absent
	// during a load, e.g. the room was never created or a create failed midway.
	ErrIncompleteRoom = errors.New("incomplete room data")
)

// RoomService implements the game operations as sequences of independent
// key-value reads and writes. There is no multi-key atomicity and no
// read-modify-write protection: two simultaneous joins (or picks) can race on
// the same keys and the last writer wins. Callers must not assume otherwise.
type RoomService struct {
	store kv.Store
}

func NewRoomService(store kv.Store) *RoomService {
	return &RoomService{store: store}
}

// NormalizeCode uppercases a user-supplied room code. Codes are
// case-insensitive everywhere.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// read fetches a key, masking every failure to "absent or unknown". Write
// failures are raised loudly; read failures are not, so a transient outage
// looks identical to a missing key.
func (s *RoomService) read(ctx context.Context, key string) (string, bool) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("Read failed for %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// readJSON unmarshals a stored JSON value into out. Malformed JSON is treated
// identically to an absent key.
func (s *RoomService) readJSON(ctx context.Context, key string, out any) bool {
	raw, ok := s.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Malformed value for %s, treating as absent: %v", key, err)
		return false
	}
	return true
}

func (s *RoomService) writeJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %v", key, err)
	}
	return s.store.Set(ctx, key, string(data))
}

// CreateRoom initializes a fresh room with the creator as sole player and
// judge, and deals the creator a hand. The initialization is six independent
// writes with no rollback; a failure partway through leaves a partial room
// that LoadRoom will report as incomplete.
func (s *RoomService) CreateRoom(ctx context.Context, code, alias string) (string, error) {
	code = NormalizeCode(code)
	log.Printf("Creating room %s for %s", code, alias)

	if err := s.store.Set(ctx, judgeKey(code), alias); err != nil {
		return "", err
	}
	if err := s.writeJSON(ctx, playersKey(code), []string{alias}); err != nil {
		return "", err
	}
	if err := s.writeJSON(ctx, scoresKey(code), map[string]int{alias: 0}); err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, roundKey(code), "1"); err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, slightKey(code), cards.DrawRandom(cards.Slights)); err != nil {
		return "", err
	}
	if err := s.writeJSON(ctx, handKey(code, alias), cards.DrawHand(cards.Curses, cards.HandSize)); err != nil {
		return "", err
	}

	return code, nil
}

// JoinRoom adds alias to an existing room, dealing a hand and a zero score.
// Joining a room you are already in is a no-op. The read-modify-write on the
// player list is unprotected: two simultaneous joins can each read the same
// list and the second save silently drops the first append.
func (s *RoomService) JoinRoom(ctx context.Context, code, alias string) (string, error) {
	code = NormalizeCode(code)
	log.Printf("Join attempt for room %s by %s", code, alias)

	var players []string
	var scores map[string]int
	if !s.readJSON(ctx, playersKey(code), &players) || !s.readJSON(ctx, scoresKey(code), &scores) {
		return "", ErrRoomNotFound
	}

	if !slices.Contains(players, alias) {
		players = append(players, alias)
		scores[alias] = 0

		if err := s.writeJSON(ctx, playersKey(code), players); err != nil {
			return "", err
		}
		if err := s.writeJSON(ctx, scoresKey(code), scores); err != nil {
			return "", err
		}
		if err := s.writeJSON(ctx, handKey(code, alias), cards.DrawHand(cards.Curses, cards.HandSize)); err != nil {
			return "", err
		}
	}

	return code, nil
}

// LoadRoom fan-out reads the room fields and assembles a snapshot. Only the
// viewer's own hand is fetched; other players' hands are never visible.
// Absent submissions are omitted, not errors. The underlying reads are not a
// consistent point-in-time view of the store.
func (s *RoomService) LoadRoom(ctx context.Context, code, viewer string) (*models.Room, error) {
	code = NormalizeCode(code)

	judge, okJudge := s.read(ctx, judgeKey(code))
	roundRaw, okRound := s.read(ctx, roundKey(code))
	slight, okSlight := s.read(ctx, slightKey(code))

	var players []string
	var scores map[string]int
	okPlayers := s.readJSON(ctx, playersKey(code), &players)
	okScores := s.readJSON(ctx, scoresKey(code), &scores)

	if !okJudge || !okPlayers || !okScores || !okRound || !okSlight {
		return nil, ErrIncompleteRoom
	}

	round, err := strconv.Atoi(roundRaw)
	if err != nil {
		log.Printf("Malformed round %q for room %s: %v", roundRaw, code, err)
		return nil, ErrIncompleteRoom
	}

	submissions := make(map[string]string)
	for _, player := range players {
		if submission, ok := s.read(ctx, submissionKey(code, player)); ok {
			submissions[player] = submission
		}
	}

	hands := make(map[string][]string)
	if viewer != "" {
		var hand []string
		if s.readJSON(ctx, handKey(code, viewer), &hand) {
			hands[viewer] = hand
		}
	}

	return &models.Room{
		Judge:       judge,
		Players:     players,
		Scores:      scores,
		Round:       round,
		Slight:      slight,
		Submissions: submissions,
		Hands:       hands,
	}, nil
}

// SubmitCurse records player's submission for the current round, removes the
// card from their hand, and tops the hand back up to HandSize with a card not
// already held, falling back to the full deck if none remains.
func (s *RoomService) SubmitCurse(ctx context.Context, code, player, curse string) error {
	code = NormalizeCode(code)
	log.Printf("%s submitting curse in room %s", player, code)

	if err := s.store.Set(ctx, submissionKey(code, player), curse); err != nil {
		return err
	}

	var hand []string
	s.readJSON(ctx, handKey(code, player), &hand)

	if i := slices.Index(hand, curse); i != -1 {
		hand = slices.Delete(hand, i, i+1)
	}

	if len(hand) < cards.HandSize {
		pool := make([]string, 0, len(cards.Curses))
		for _, candidate := range cards.Curses {
			if !slices.Contains(hand, candidate) {
				pool = append(pool, candidate)
			}
		}
		if len(pool) == 0 {
			pool = cards.Curses
		}
		hand = append(hand, cards.DrawRandom(pool))
	}

	return s.writeJSON(ctx, handKey(code, player), hand)
}

// RedrawHand replaces player's entire hand with a fresh draw, forfeiting the
// round; no submission is recorded.
func (s *RoomService) RedrawHand(ctx context.Context, code, player string) error {
	code = NormalizeCode(code)
	log.Printf("%s redrawing hand in room %s", player, code)

	return s.writeJSON(ctx, handKey(code, player), cards.DrawHand(cards.Curses, cards.HandSize))
}

// PickWinner settles the round from the caller's (possibly stale) snapshot:
// it bumps the winner's score, records the transient lastWinner reveal,
// advances the round, draws a new slight, rotates the judge to the player
// after the current judge, and clears every submission. No check that the
// caller is actually the judge; that lives only in view-level gating.
func (s *RoomService) PickWinner(ctx context.Context, code string, room *models.Room, winner string) error {
	code = NormalizeCode(code)
	log.Printf("Picking winner %s in room %s (round %d)", winner, code, room.Round)

	scores := make(map[string]int, len(room.Scores))
	for name, score := range room.Scores {
		scores[name] = score
	}
	scores[winner]++

	record := models.LastWinner{Winner: winner, Curse: room.Submissions[winner]}
	if err := s.writeJSON(ctx, lastWinnerKey(code), record); err != nil {
		return err
	}

	if err := s.writeJSON(ctx, scoresKey(code), scores); err != nil {
		return err
	}
	if err := s.store.Set(ctx, roundKey(code), strconv.Itoa(room.Round+1)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, slightKey(code), cards.DrawRandom(cards.Slights)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, judgeKey(code), cards.NextJudge(room.Players, room.Judge)); err != nil {
		return err
	}
	for _, player := range room.Players {
		if _, err := s.store.Delete(ctx, submissionKey(code, player)); err != nil {
			return err
		}
	}

	return nil
}

// LastWinner returns the current reveal record, or nil when the key is
// absent, malformed, or unreadable.
func (s *RoomService) LastWinner(ctx context.Context, code string) *models.LastWinner {
	code = NormalizeCode(code)

	var record models.LastWinner
	if !s.readJSON(ctx, lastWinnerKey(code), &record) {
		return nil
	}
	return &record
}

// ClearLastWinner deletes the transient reveal record. Clearing an absent
// record is a no-op.
func (s *RoomService) ClearLastWinner(ctx context.Context, code string) error {
	code = NormalizeCode(code)

	_, err := s.store.Delete(ctx, lastWinnerKey(code))
	return err
}
