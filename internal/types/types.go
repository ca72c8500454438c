package types

import "github.com/mverdejo/hangman-backend/internal/game"

type ClientMessage struct {
	Type   string `json:"type"` // "Guess" | "Reset"
	Letter string `json:"letter,omitempty"`
}

type ServerMessage struct {
	Type    string     `json:"type"` // "StateSnapshot" | "Error"
	Version int        `json:"version,omitempty"`
	State   *game.View `json:"state,omitempty"`
	Error   string     `json:"error,omitempty"`
}
