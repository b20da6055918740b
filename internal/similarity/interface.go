package similarity

//go:generate mockgen -package=mocks -destination=mocks/mock_oracle.go github.com/KirkDiggler/similarium/internal/similarity Oracle

import (
	"context"
	"errors"
)

// ErrWordNotFound is returned when a word is outside the vocabulary
var ErrWordNotFound = errors.New("word not in vocabulary")

// Oracle ranks words by semantic closeness to a secret. Ranks are dense:
// the secret is rank 0 and every other vocabulary word has a distinct rank.
// Any error other than ErrWordNotFound is transient.
type Oracle interface {
	// RankOf returns the rank and similarity of word against secret
	RankOf(ctx context.Context, secret, word string) (*Similarity, error)

	// Prepare builds whatever lookup structure RankOf needs for secret
	Prepare(ctx context.Context, secret string) error
}
