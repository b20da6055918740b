package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/similarium/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetMilestoneMessage returns a celebration for entering a top bucket
	GetMilestoneMessage(ctx context.Context, input *GetMilestoneMessageInput) (*GetMilestoneMessageOutput, error)

	// GetWinMessage returns a celebration for finding the secret
	GetWinMessage(ctx context.Context, input *GetWinMessageInput) (*GetWinMessageOutput, error)

	// GetTauntMessage returns a nudge for a channel that is stuck
	GetTauntMessage(ctx context.Context, input *GetTauntMessageInput) (*GetTauntMessageOutput, error)

	// GetGameEndedMessage returns the closing line of a game
	GetGameEndedMessage(ctx context.Context, input *GetGameEndedMessageInput) (*GetGameEndedMessageOutput, error)
}
