package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/similarium/internal/services/game Service

import "context"

// Service defines the interface for game operations
type Service interface {
	// Submit scores a guess and reports what it changed
	Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error)

	// StartGame opens the next puzzle in a channel, ending the current one
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// EndGame closes the active puzzle of a channel
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// EvaluateTaunt decides whether a stuck game should be taunted
	EvaluateTaunt(ctx context.Context, input *EvaluateTauntInput) (*EvaluateTauntOutput, error)

	// GetGameSummary returns the state of a game and its best guesses
	GetGameSummary(ctx context.Context, input *GetGameSummaryInput) (*GetGameSummaryOutput, error)

	// ListActiveGames returns every running game, oldest first
	ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error)
}
