package guess_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/similarium/internal/repositories/guess_ledger Repository

import (
	"context"

	"github.com/KirkDiggler/similarium/internal/models"
)

// Repository defines the per-game ledger of distinct guesses and winners.
// Every method is safe for concurrent use; Upsert is atomic per game.
type Repository interface {
	// Upsert records a guess, allocating a sequence number only for new words
	Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error)

	// TopRank returns the best rank guessed so far
	TopRank(ctx context.Context, input *TopRankInput) (*TopRankOutput, error)

	// Count returns the number of distinct words guessed
	Count(ctx context.Context, input *CountInput) (int, error)

	// ListTop returns the best guesses, closest first
	ListTop(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error)

	// ListLatest returns the most recently submitted guesses, newest first
	ListLatest(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error)

	// AddWinner records a win, failing with ErrWinnerExists on a second win
	AddWinner(ctx context.Context, input *AddWinnerInput) error

	// GetWinner returns the win of one user, or ErrWinnerNotFound
	GetWinner(ctx context.Context, input *GetWinnerInput) (*models.Winner, error)

	// ListWinners returns all winners in the order they won
	ListWinners(ctx context.Context, input *ListWinnersInput) ([]*models.Winner, error)

	// Expire drops the whole ledger of a finished game once TTL has passed
	Expire(ctx context.Context, input *ExpireInput) error
}
