package models

import "time"

// EventType identifies what happened in a game
type EventType string

const (
	// EventTypeGuessAccepted is a guess that changed nothing notable
	EventTypeGuessAccepted EventType = "guess_accepted"

	// EventTypeMilestoneReached is the first guess inside a top bucket
	EventTypeMilestoneReached EventType = "milestone_reached"

	// EventTypeGameWon is a user finding the secret
	EventTypeGameWon EventType = "game_won"

	// EventTypeTaunt nudges a channel that has been stuck for a while
	EventTypeTaunt EventType = "taunt"

	// EventTypeGameStarted is a new puzzle in a channel
	EventTypeGameStarted EventType = "game_started"

	// EventTypeGameEnded is a puzzle closing
	EventTypeGameEnded EventType = "game_ended"
)

// Event is the outcome of a game operation, handed to notifiers. Only the
// fields relevant to Type are set.
type Event struct {
	// Type is the kind of event
	Type EventType `json:"type"`

	// GameID is the game the event belongs to
	GameID string `json:"game_id"`

	// ChannelID is the channel to notify
	ChannelID string `json:"channel_id"`

	// UserID is the user who caused the event, if any
	UserID string `json:"user_id,omitempty"`

	// Bucket is the milestone threshold for EventTypeMilestoneReached
	Bucket int `json:"bucket,omitempty"`

	// Guess is the guess that caused the event, if any
	Guess *Guess `json:"guess,omitempty"`

	// Winner is set for EventTypeGameWon
	Winner *Winner `json:"winner,omitempty"`

	// Message is human readable flavour text for the event
	Message string `json:"message,omitempty"`

	// Timestamp is when the event was produced
	Timestamp time.Time `json:"timestamp"`
}
