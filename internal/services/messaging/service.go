package messaging

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/similarium/internal/dice"
)

// service implements the Service interface
type service struct {
	// Random source for selecting among candidate messages
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var roller dice.Roller
	if config != nil && config.Roller != nil {
		roller = config.Roller
	} else {
		roller = dice.New(nil)
	}

	return &service{
		roller: roller,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.roller.Intn(len(messages))]
}

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// GetMilestoneMessage returns a celebration for entering a top bucket
func (s *service) GetMilestoneMessage(ctx context.Context, input *GetMilestoneMessageInput) (*GetMilestoneMessageOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	var messages []string
	switch {
	case input.Bucket <= 10:
		messages = []string{
			"%s just guessed *%s*, rank %d. That's the top 10! The secret is trembling.",
			"Top 10! %s found *%s* at rank %d. Someone finish this.",
			"%s is breathing down the secret's neck with *%s* (rank %d).",
		}
	case input.Bucket <= 100:
		messages = []string{
			"%s cracked the top 100 with *%s* (rank %d)!",
			"Getting warmer! %s found *%s* at rank %d.",
			"%s is onto something: *%s* made the top 100 at rank %d.",
		}
	default:
		messages = []string{
			"%s found the first top 1000 word: *%s* at rank %d.",
			"We have a signal! %s guessed *%s* at rank %d.",
			"%s got us into the top 1000 with *%s* (rank %d). Keep digging.",
		}
	}

	message := fmt.Sprintf(s.pick(messages), mention(input.UserID), input.Word, input.Rank)

	return &GetMilestoneMessageOutput{
		Message: message,
		Tone:    ToneCelebration,
	}, nil
}

// GetWinMessage returns a celebration for finding the secret
func (s *service) GetWinMessage(ctx context.Context, input *GetWinMessageInput) (*GetWinMessageOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Place <= 1 {
		messages := []string{
			"%s found the secret *%s* after %d guesses! :tada:",
			"Nailed it! %s guessed *%s* on guess %d.",
			"The secret was *%[2]s* and %[1]s found it first, %[3]d guesses in.",
		}
		return &GetWinMessageOutput{
			Message: fmt.Sprintf(s.pick(messages), mention(input.UserID), input.Secret, input.Sequence),
			Tone:    ToneCelebration,
		}, nil
	}

	messages := []string{
		"%s also found the secret! That's winner number %d.",
		"%s joins the winners circle in place %d.",
	}
	return &GetWinMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), mention(input.UserID), input.Place),
		Tone:    ToneEncouraging,
	}, nil
}

// GetTauntMessage returns a nudge for a channel that is stuck
func (s *service) GetTauntMessage(ctx context.Context, input *GetTauntMessageInput) (*GetTauntMessageOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	messages := []string{
		"%d guesses and the best you have is *%s* at rank %d? The secret is safe with you lot.",
		"%d guesses in and *%s* (rank %d) is your best shot. I'm not worried.",
		"After %d guesses, *%s* at %d. Maybe try words that mean something?",
		"%d guesses. *%s*. Rank %d. I'll wait.",
	}

	return &GetTauntMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.GuessCount, input.TopWord, input.TopRank),
		Tone:    ToneSarcastic,
	}, nil
}

// GetGameEndedMessage returns the closing line of a game
func (s *service) GetGameEndedMessage(ctx context.Context, input *GetGameEndedMessageInput) (*GetGameEndedMessageOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.WinnerCount == 0 {
		return &GetGameEndedMessageOutput{
			Message: fmt.Sprintf("Puzzle #%d is over. Nobody found *%s* in %d guesses.", input.PuzzleNumber, input.Secret, input.GuessCount),
			Tone:    ToneSarcastic,
		}, nil
	}

	return &GetGameEndedMessageOutput{
		Message: fmt.Sprintf("Puzzle #%d is over. The secret was *%s*, found by %d after %d guesses.", input.PuzzleNumber, input.Secret, input.WinnerCount, input.GuessCount),
		Tone:    ToneNeutral,
	}, nil
}
