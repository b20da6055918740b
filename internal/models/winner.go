package models

import "time"

// Winner records that a user found the secret of a game
type Winner struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`

	// Sequence is the guess count at the time of the win
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}
