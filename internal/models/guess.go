package models

import "time"

// Guess is a distinct word submitted to a game
type Guess struct {
	// ID is the unique identifier for the guess
	ID string `json:"id"`

	// GameID is the game this guess belongs to
	GameID string `json:"game_id"`

	// Word is the normalized guess, unique within the game
	Word string `json:"word"`

	// Rank is the distance from the secret, 0 being the secret itself
	Rank int `json:"rank"`

	// Similarity is the closeness score reported alongside the rank
	Similarity float64 `json:"similarity"`

	// Sequence is the order in which distinct words were first guessed, from 1
	Sequence int `json:"sequence"`

	// UserID is who first guessed the word
	UserID string `json:"user_id"`

	// LatestUserID is who most recently guessed the word
	LatestUserID string `json:"latest_user_id"`

	// UpdatedAt is when the word was most recently guessed
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSecret returns true if the guess found the secret word
func (g *Guess) IsSecret() bool {
	return g.Rank == 0
}
