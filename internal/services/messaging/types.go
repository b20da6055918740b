package messaging

import "github.com/KirkDiggler/similarium/internal/dice"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Roller picks among the candidate lines; a time seeded one is used when nil
	Roller dice.Roller
}

// GetMilestoneMessageInput contains parameters for a milestone message
type GetMilestoneMessageInput struct {
	// Bucket is the threshold that was crossed (1000, 100 or 10)
	Bucket int

	// UserID is the player whose guess crossed it
	UserID string

	// Word is the guess that crossed it
	Word string

	// Rank is the rank of the guess
	Rank int
}

// GetMilestoneMessageOutput contains the milestone message
type GetMilestoneMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetWinMessageInput contains parameters for a win message
type GetWinMessageInput struct {
	// UserID is the winner
	UserID string

	// Secret is the word that was found
	Secret string

	// Sequence is the guess count at the time of the win
	Sequence int

	// Place is 1 for the first winner of the game, 2 for the second and so on
	Place int
}

// GetWinMessageOutput contains the win message
type GetWinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetTauntMessageInput contains parameters for a taunt
type GetTauntMessageInput struct {
	// GuessCount is the number of distinct guesses so far
	GuessCount int

	// TopWord is the closest guess so far
	TopWord string

	// TopRank is the rank of the closest guess
	TopRank int
}

// GetTauntMessageOutput contains the taunt
type GetTauntMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameEndedMessageInput contains parameters for the closing message
type GetGameEndedMessageInput struct {
	// PuzzleNumber is the number of the puzzle that ended
	PuzzleNumber int

	// Secret is the word nobody, or somebody, found
	Secret string

	// GuessCount is the number of distinct guesses made
	GuessCount int

	// WinnerCount is the number of players who found the secret
	WinnerCount int
}

// GetGameEndedMessageOutput contains the closing message
type GetGameEndedMessageOutput struct {
	Message string
	Tone    MessageTone
}
