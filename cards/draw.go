package cards

import "math/rand"

// HandSize is the number of curses every player holds between actions.
const HandSize = 5

// DrawRandom returns one uniformly random element of deck. The deck must be
// non-empty; callers guard against empty decks.
func DrawRandom(deck []string) string {
	return deck[rand.Intn(len(deck))]
}

// DrawHand returns size cards drawn from deck without duplicates, via
// shuffle-then-take. If size exceeds the deck length, the whole shuffled deck
// is returned rather than padding with repeats.
func DrawHand(deck []string, size int) []string {
	shuffled := make([]string, len(deck))
	copy(shuffled, deck)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if size > len(shuffled) {
		size = len(shuffled)
	}
	return shuffled[:size]
}

// NextJudge returns the player immediately after current in join order,
// wrapping to the first player. Callers guarantee current is in players.
func NextJudge(players []string, current string) string {
	for i, player := range players {
		if player == current {
			return players[(i+1)%len(players)]
		}
	}
	return players[0]
}
