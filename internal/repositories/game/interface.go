package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/similarium/internal/repositories/game Repository

import (
	"context"

	"github.com/KirkDiggler/similarium/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game and points its channel at it
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetGameByChannel retrieves the most recent game of a channel
	GetGameByChannel(ctx context.Context, input *GetGameByChannelInput) (*models.Game, error)

	// GetActiveGames retrieves all active games
	GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error)

	// NextPuzzleNumber allocates the next puzzle number of a channel
	NextPuzzleNumber(ctx context.Context, input *NextPuzzleNumberInput) (int, error)
}
