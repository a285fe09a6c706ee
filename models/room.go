package models

// Room is one client's loaded snapshot of a game room. It is assembled from
// fan-out reads of the per-field room keys, so it is not a consistent
// point-in-time view of the remote store.
type Room struct {
	Judge       string            `json:"judge"`
	Players     []string          `json:"players"`
	Scores      map[string]int    `json:"scores"`
	Round       int               `json:"round"`
	Slight      string            `json:"slight"`
	Submissions map[string]string `json:"submissions"`
	// Hands only ever contains the viewing player's own hand; other players'
	// hands are never fetched.
	Hands map[string][]string `json:"hands"`
}

// LastWinner is the transient reveal record written by pickWinner and polled
// by every client to trigger the winner overlay.
type LastWinner struct {
	Winner string `json:"winner"`
	Curse  string `json:"curse"`
}
