package guess_ledger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
)

type memoryGame struct {
	mu       sync.Mutex
	guesses  map[string]*models.Guess
	sequence int
	winners  map[string]*models.Winner

	// expiresAt is guarded by the repository lock; zero means never
	expiresAt time.Time
}

// memoryRepository keeps ledgers in process memory. Each game has its own
// lock so games never contend with each other.
type memoryRepository struct {
	mu    sync.Mutex
	games map[string]*memoryGame
	now   func() time.Time
}

// NewMemory creates an in-memory guess ledger
func NewMemory() *memoryRepository {
	return &memoryRepository{
		games: make(map[string]*memoryGame),
		now:   time.Now,
	}
}

func (g *memoryGame) expired(now time.Time) bool {
	return !g.expiresAt.IsZero() && !now.Before(g.expiresAt)
}

func (r *memoryRepository) game(gameID string) *memoryGame {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok || g.expired(r.now()) {
		g = &memoryGame{
			guesses: make(map[string]*models.Guess),
			winners: make(map[string]*models.Winner),
		}
		r.games[gameID] = g
	}
	return g
}

func (g *memoryGame) topRank() (int, bool) {
	found := false
	best := 0
	for _, guess := range g.guesses {
		if !found || guess.Rank < best {
			best = guess.Rank
			found = true
		}
	}
	return best, found
}

func copyGuess(g *models.Guess) *models.Guess {
	c := *g
	return &c
}

// Upsert records a guess atomically
func (r *memoryRepository) Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error) {
	if input == nil || input.GameID == "" || input.Word == "" {
		return nil, errors.New("input, game ID and word cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	defer g.mu.Unlock()

	prevTop, hadGuesses := g.topRank()
	now := input.Now.UTC()

	if existing, ok := g.guesses[input.Word]; ok {
		existing.LatestUserID = input.UserID
		existing.UpdatedAt = now
		return &UpsertOutput{
			Guess:           copyGuess(existing),
			IsNew:           false,
			HadGuesses:      hadGuesses,
			PreviousTopRank: prevTop,
		}, nil
	}

	g.sequence++
	guess := &models.Guess{
		ID:           input.GuessID,
		GameID:       input.GameID,
		Word:         input.Word,
		Rank:         input.Rank,
		Similarity:   input.Similarity,
		Sequence:     g.sequence,
		UserID:       input.UserID,
		LatestUserID: input.UserID,
		UpdatedAt:    now,
	}
	g.guesses[input.Word] = guess

	return &UpsertOutput{
		Guess:           copyGuess(guess),
		IsNew:           true,
		HadGuesses:      hadGuesses,
		PreviousTopRank: prevTop,
	}, nil
}

// TopRank returns the lowest rank in the game
func (r *memoryRepository) TopRank(ctx context.Context, input *TopRankInput) (*TopRankOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	defer g.mu.Unlock()

	rank, found := g.topRank()
	return &TopRankOutput{
		Rank:  rank,
		Found: found,
	}, nil
}

// Count returns the number of distinct guesses in the game
func (r *memoryRepository) Count(ctx context.Context, input *CountInput) (int, error) {
	if input == nil || input.GameID == "" {
		return 0, errors.New("input and game ID cannot be empty")
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.guesses), nil
}

func (r *memoryRepository) list(input *ListGuessesInput, less func(a, b *models.Guess) bool) ([]*models.Guess, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	guesses := make([]*models.Guess, 0, len(g.guesses))
	for _, guess := range g.guesses {
		guesses = append(guesses, copyGuess(guess))
	}
	g.mu.Unlock()

	sort.Slice(guesses, func(i, j int) bool {
		return less(guesses[i], guesses[j])
	})

	if input.Limit > 0 && len(guesses) > input.Limit {
		guesses = guesses[:input.Limit]
	}

	return guesses, nil
}

// ListTop returns guesses ordered by rank
func (r *memoryRepository) ListTop(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error) {
	return r.list(input, func(a, b *models.Guess) bool {
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Word < b.Word
	})
}

// ListLatest returns guesses ordered by last submission, newest first
func (r *memoryRepository) ListLatest(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error) {
	return r.list(input, func(a, b *models.Guess) bool {
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.Word > b.Word
	})
}

// AddWinner records a win unless the user already has one
func (r *memoryRepository) AddWinner(ctx context.Context, input *AddWinnerInput) error {
	if input == nil || input.Winner == nil || input.Winner.GameID == "" || input.Winner.UserID == "" {
		return errors.New("input, game ID and user ID cannot be empty")
	}

	g := r.game(input.Winner.GameID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.winners[input.Winner.UserID]; ok {
		return ErrWinnerExists
	}
	winner := *input.Winner
	g.winners[winner.UserID] = &winner

	return nil
}

// GetWinner returns the win of a user
func (r *memoryRepository) GetWinner(ctx context.Context, input *GetWinnerInput) (*models.Winner, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	defer g.mu.Unlock()

	winner, ok := g.winners[input.UserID]
	if !ok {
		return nil, ErrWinnerNotFound
	}
	c := *winner
	return &c, nil
}

// ListWinners returns winners ordered by the sequence of their win
func (r *memoryRepository) ListWinners(ctx context.Context, input *ListWinnersInput) ([]*models.Winner, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	g := r.game(input.GameID)
	g.mu.Lock()
	winners := make([]*models.Winner, 0, len(g.winners))
	for _, winner := range g.winners {
		c := *winner
		winners = append(winners, &c)
	}
	g.mu.Unlock()

	sortWinners(winners)

	return winners, nil
}

// Expire schedules the game's ledger for removal and drops every ledger
// whose deadline already passed
func (r *memoryRepository) Expire(ctx context.Context, input *ExpireInput) error {
	if input == nil || input.GameID == "" || input.TTL <= 0 {
		return errors.New("input, game ID and TTL cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for gameID, g := range r.games {
		if g.expired(now) {
			delete(r.games, gameID)
		}
	}

	if g, ok := r.games[input.GameID]; ok {
		g.expiresAt = now.Add(input.TTL)
	}
	return nil
}
