package models

// Session is a client-local identity: the chosen display name and the room
// being played. It is never persisted centrally; a browser reconstructs it
// from the route each time a game page loads.
type Session struct {
	Name string `json:"name"`
	Room string `json:"room"`
}
