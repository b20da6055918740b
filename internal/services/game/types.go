package game

import (
	"time"

	"github.com/KirkDiggler/similarium/internal/common/clock"
	"github.com/KirkDiggler/similarium/internal/common/uuid"
	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/picker"
	gameRepo "github.com/KirkDiggler/similarium/internal/repositories/game"
	ledgerRepo "github.com/KirkDiggler/similarium/internal/repositories/guess_ledger"
	"github.com/KirkDiggler/similarium/internal/services/messaging"
	"github.com/KirkDiggler/similarium/internal/services/milestone"
	"github.com/KirkDiggler/similarium/internal/similarity"
	"github.com/KirkDiggler/similarium/internal/words"
	"github.com/rs/zerolog"
)

const (
	// DefaultSummaryLimit is how many guesses a summary lists when unspecified
	DefaultSummaryLimit = 15

	// DefaultLedgerRetention is how long an ended game's ledger is kept
	DefaultLedgerRetention = 7 * 24 * time.Hour
)

// Config holds configuration for the game service
type Config struct {
	// GameRepo stores games
	GameRepo gameRepo.Repository

	// LedgerRepo stores guesses and winners
	LedgerRepo ledgerRepo.Repository

	// Oracle ranks guesses against the secret
	Oracle similarity.Oracle

	// Picker chooses the secret of each puzzle
	Picker *picker.Picker

	// Evaluator decides taunts
	Evaluator *milestone.Evaluator

	// Normalizer canonicalizes guesses; the built-in rules apply when nil
	Normalizer *words.Normalizer

	// Messaging writes event text; events carry no text when nil
	Messaging messaging.Service

	// Clock provides the current time
	Clock clock.Clock

	// UUID generates identifiers
	UUID uuid.UUID

	// LedgerRetention is how long an ended game's ledger is kept;
	// DefaultLedgerRetention when 0
	LedgerRetention time.Duration

	// Logger is used for structured logging; a no-op logger when nil
	Logger *zerolog.Logger
}

// SubmitInput contains parameters for submitting a guess
type SubmitInput struct {
	// GameID is the game being guessed in
	GameID string

	// UserID is the player guessing
	UserID string

	// Text is the raw guess as typed
	Text string
}

// SubmitOutput contains the result of a guess
type SubmitOutput struct {
	// Guess is the ledger entry after the submission
	Guess *models.Guess

	// IsNew is true when the word had not been guessed before
	IsNew bool

	// Events are the notifications the guess produced, in order
	Events []*models.Event
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	// ChannelID is the channel to start the game in
	ChannelID string

	// Scheduled marks a start triggered by the channel's daily slot rather
	// than by a person
	Scheduled bool
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	// Game is the new active game, or the kept one when Skipped
	Game *models.Game

	// Previous is the game that was ended to make room, if any
	Previous *models.Game

	// Skipped is true when a scheduled start kept an unplayed game
	Skipped bool

	// Events are the notifications for the channel
	Events []*models.Event
}

// EndGameInput contains parameters for ending a game
type EndGameInput struct {
	// ChannelID is the channel whose active game ends
	ChannelID string
}

// EndGameOutput contains the result of ending a game
type EndGameOutput struct {
	// Game is the ended game
	Game *models.Game

	// Events are the notifications for the channel
	Events []*models.Event
}

// EvaluateTauntInput contains parameters for a taunt decision
type EvaluateTauntInput struct {
	// GameID is the game to consider
	GameID string
}

// EvaluateTauntOutput contains the taunt decision
type EvaluateTauntOutput struct {
	// Taunted is true when a taunt fired
	Taunted bool

	// Event is the taunt, set when Taunted
	Event *models.Event
}

// GetGameSummaryInput contains parameters for a game summary
type GetGameSummaryInput struct {
	// GameID is the game to summarize
	GameID string

	// Limit caps the top and latest lists; DefaultSummaryLimit when 0
	Limit int
}

// GetGameSummaryOutput contains the summary of a game
type GetGameSummaryOutput struct {
	// Game is the game itself
	Game *models.Game

	// GuessCount is the number of distinct guesses
	GuessCount int

	// TopRank is the best rank so far; only meaningful when HasGuesses
	TopRank int

	// HasGuesses is false for a game nobody guessed in yet
	HasGuesses bool

	// Top are the closest guesses
	Top []*models.Guess

	// Latest are the most recently submitted guesses
	Latest []*models.Guess

	// Winners are the players who found the secret, in order
	Winners []*models.Winner
}

// ListActiveGamesInput contains parameters for listing running games
type ListActiveGamesInput struct {
}

// ListActiveGamesOutput contains the running games
type ListActiveGamesOutput struct {
	// Games are the active games, oldest first
	Games []*models.Game
}
