package similarity

import (
	"context"
	"sync"
)

// Static is an in-memory oracle holding explicit rankings. It is used for
// local runs and tests where no embeddings database is available.
type Static struct {
	mu       sync.RWMutex
	ranks    map[string]map[string]Similarity
	prepared map[string]int
}

// NewStatic creates an empty static oracle
func NewStatic() *Static {
	return &Static{
		ranks:    make(map[string]map[string]Similarity),
		prepared: make(map[string]int),
	}
}

// Set records the rank and similarity of word against secret
func (s *Static) Set(secret, word string, rank int, similarity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.ranks[secret]
	if !ok {
		table = make(map[string]Similarity)
		s.ranks[secret] = table
	}
	table[word] = Similarity{
		Word:       word,
		Rank:       rank,
		Similarity: similarity,
	}
}

// SetRanking records words in order of closeness to secret, starting at
// rank 1. Similarity falls linearly with rank.
func (s *Static) SetRanking(secret string, ranked []string) {
	step := MaxSimilarity / float64(len(ranked)+1)
	for i, word := range ranked {
		s.Set(secret, word, i+1, MaxSimilarity-step*float64(i+1))
	}
}

// RankOf implements Oracle
func (s *Static) RankOf(ctx context.Context, secret, word string) (*Similarity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if word == secret {
		return &Similarity{Word: word, Rank: 0, Similarity: MaxSimilarity}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	found, ok := s.ranks[secret][word]
	if !ok {
		return nil, ErrWordNotFound
	}

	return &found, nil
}

// Prepare implements Oracle; it only counts calls
func (s *Static) Prepare(ctx context.Context, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared[secret]++

	return nil
}

// Prepared returns how many times Prepare ran for secret
func (s *Static) Prepared(secret string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prepared[secret]
}
