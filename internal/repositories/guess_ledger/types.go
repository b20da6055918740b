package guess_ledger

import (
	"errors"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
)

var (
	// ErrWinnerExists is returned when a user already won the game
	ErrWinnerExists = errors.New("user already won this game")

	// ErrWinnerNotFound is returned when a user has not won the game
	ErrWinnerNotFound = errors.New("winner not found")
)

// UpsertInput contains parameters for recording a guess
type UpsertInput struct {
	// GameID is the game being guessed in
	GameID string

	// GuessID is the identifier used if the word is new to the game
	GuessID string

	// Word is the normalized guess
	Word string

	// UserID is the submitter
	UserID string

	// Rank is the oracle rank of the word
	Rank int

	// Similarity is the oracle similarity of the word
	Similarity float64

	// Now is the submission time
	Now time.Time
}

// UpsertOutput contains the result of recording a guess
type UpsertOutput struct {
	// Guess is the stored guess after the update
	Guess *models.Guess

	// IsNew is true when the word had not been guessed in the game before
	IsNew bool

	// HadGuesses is false when this was the first guess of the game
	HadGuesses bool

	// PreviousTopRank is the best rank before this guess; only meaningful
	// when HadGuesses is true
	PreviousTopRank int
}

type TopRankInput struct {
	GameID string
}

type TopRankOutput struct {
	// Rank is the best rank guessed so far
	Rank int

	// Found is false when the game has no guesses
	Found bool
}

type CountInput struct {
	GameID string
}

type ListGuessesInput struct {
	GameID string

	// Limit caps the number of guesses returned; 0 returns all
	Limit int
}

type AddWinnerInput struct {
	Winner *models.Winner
}

type GetWinnerInput struct {
	GameID string
	UserID string
}

type ListWinnersInput struct {
	GameID string
}

type ExpireInput struct {
	GameID string

	// TTL is how long the ledger stays readable
	TTL time.Duration
}
