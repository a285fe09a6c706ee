package services

import "fmt"

// Key schema for room state. All values are strings; structured values are
// JSON-encoded before storage.

func judgeKey(code string) string {
	return fmt.Sprintf("room:%s:judge", code)
}

func playersKey(code string) string {
	return fmt.Sprintf("room:%s:players", code)
}

func scoresKey(code string) string {
	return fmt.Sprintf("room:%s:scores", code)
}

func roundKey(code string) string {
	return fmt.Sprintf("room:%s:round", code)
}

func slightKey(code string) string {
	return fmt.Sprintf("room:%s:slight", code)
}

func submissionKey(code, player string) string {
	return fmt.Sprintf("room:%s:submission:%s", code, player)
}

func handKey(code, player string) string {
	return fmt.Sprintf("room:%s:hand:%s", code, player)
}

func lastWinnerKey(code string) string {
	return fmt.Sprintf("room:%s:lastWinner", code)
}
