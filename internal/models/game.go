package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusActive indicates guesses are being accepted
	GameStatusActive GameStatus = "active"

	// GameStatusEnded indicates the game was superseded or stopped
	GameStatusEnded GameStatus = "ended"
)

// IsActive returns true if the game accepts guesses
func (s GameStatus) IsActive() bool {
	return s == GameStatusActive
}

// Game is one daily puzzle played in a channel
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// ChannelID is the chat channel the game belongs to
	ChannelID string `json:"channel_id"`

	// PuzzleNumber increases by one for every game started in the channel
	PuzzleNumber int `json:"puzzle_number"`

	// Secret is the word players are trying to find
	Secret string `json:"secret"`

	// Status is the current state of the game
	Status GameStatus `json:"status"`

	// TauntIndex is the guess count at which the last taunt fired
	TauntIndex int `json:"taunt_index"`

	// Version increases on every save and guards against lost updates
	Version int `json:"version"`

	// CreatedAt is when the game was started
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time `json:"updated_at"`

	// EndedAt is when the game stopped accepting guesses
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

// IsActive returns true if the game accepts guesses
func (g *Game) IsActive() bool {
	return g.Status.IsActive()
}
