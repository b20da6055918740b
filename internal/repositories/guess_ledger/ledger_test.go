package guess_ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite runs the same behaviour checks against every backend
type LedgerTestSuite struct {
	suite.Suite
	backend string
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
	gameID  string

	// clockNow drives the memory backend's expiry checks
	clockNow time.Time
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.gameID = "test-game-id"

	switch s.backend {
	case "redis":
		mr, err := miniredis.Run()
		s.Require().NoError(err)
		s.mr = mr

		s.client = redis.NewClient(&redis.Options{
			Addr: s.mr.Addr(),
		})

		repo, err := NewRedis(&Config{
			RedisClient: s.client,
		})
		s.Require().NoError(err)
		s.repo = repo
	default:
		s.clockNow = s.testNow
		repo := NewMemory()
		repo.now = func() time.Time { return s.clockNow }
		s.repo = repo
	}
}

func (s *LedgerTestSuite) TearDownTest() {
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	if s.mr != nil {
		s.mr.Close()
		s.mr = nil
	}
}

func TestRedisLedgerTestSuite(t *testing.T) {
	suite.Run(t, &LedgerTestSuite{backend: "redis"})
}

func TestMemoryLedgerTestSuite(t *testing.T) {
	suite.Run(t, &LedgerTestSuite{backend: "memory"})
}

// advance moves the backend's notion of time forward
func (s *LedgerTestSuite) advance(d time.Duration) {
	if s.mr != nil {
		s.mr.FastForward(d)
		return
	}
	s.clockNow = s.clockNow.Add(d)
}

func (s *LedgerTestSuite) upsert(word, user string, rank int, at time.Time) *UpsertOutput {
	out, err := s.repo.Upsert(s.ctx, &UpsertInput{
		GameID:     s.gameID,
		GuessID:    "id-" + word,
		Word:       word,
		UserID:     user,
		Rank:       rank,
		Similarity: 100 - float64(rank)/100,
		Now:        at,
	})
	s.Require().NoError(err)
	return out
}

func (s *LedgerTestSuite) TestFirstGuess() {
	out := s.upsert("airplane", "user-a", 5000, s.testNow)

	s.True(out.IsNew)
	s.False(out.HadGuesses)
	s.Equal("id-airplane", out.Guess.ID)
	s.Equal(s.gameID, out.Guess.GameID)
	s.Equal("airplane", out.Guess.Word)
	s.Equal(5000, out.Guess.Rank)
	s.Equal(1, out.Guess.Sequence)
	s.Equal("user-a", out.Guess.UserID)
	s.Equal("user-a", out.Guess.LatestUserID)
	s.True(s.testNow.Equal(out.Guess.UpdatedAt))
}

func (s *LedgerTestSuite) TestResubmissionKeepsSequenceAndRank() {
	s.upsert("vehicle", "user-a", 3, s.testNow)
	s.upsert("airplane", "user-b", 5000, s.testNow.Add(time.Second))

	later := s.testNow.Add(time.Minute)
	out, err := s.repo.Upsert(s.ctx, &UpsertInput{
		GameID:     s.gameID,
		GuessID:    "ignored",
		Word:       "vehicle",
		UserID:     "user-c",
		Rank:       9999,
		Similarity: -1,
		Now:        later,
	})
	s.Require().NoError(err)

	s.False(out.IsNew)
	s.True(out.HadGuesses)
	s.Equal(3, out.PreviousTopRank)
	s.Equal("id-vehicle", out.Guess.ID)
	s.Equal(1, out.Guess.Sequence)
	s.Equal(3, out.Guess.Rank)
	vehicleRank := 3
	s.Equal(100-float64(vehicleRank)/100, out.Guess.Similarity)
	s.Equal("user-a", out.Guess.UserID)
	s.Equal("user-c", out.Guess.LatestUserID)
	s.True(later.Equal(out.Guess.UpdatedAt))

	count, err := s.repo.Count(s.ctx, &CountInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Equal(2, count)

	// the next new word continues the sequence without a gap
	next := s.upsert("car", "user-a", 0, later.Add(time.Second))
	s.True(next.IsNew)
	s.Equal(3, next.Guess.Sequence)
}

func (s *LedgerTestSuite) TestPreviousTopRankIsTakenBeforeInsert() {
	out := s.upsert("airplane", "user-a", 5000, s.testNow)
	s.False(out.HadGuesses)

	out = s.upsert("vehicle", "user-a", 3, s.testNow)
	s.True(out.HadGuesses)
	s.Equal(5000, out.PreviousTopRank)

	out = s.upsert("boat", "user-a", 40, s.testNow)
	s.Equal(3, out.PreviousTopRank)

	top, err := s.repo.TopRank(s.ctx, &TopRankInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.True(top.Found)
	s.Equal(3, top.Rank)
}

func (s *LedgerTestSuite) TestTopRankOfEmptyGame() {
	top, err := s.repo.TopRank(s.ctx, &TopRankInput{GameID: "empty"})
	s.Require().NoError(err)
	s.False(top.Found)

	count, err := s.repo.Count(s.ctx, &CountInput{GameID: "empty"})
	s.Require().NoError(err)
	s.Zero(count)

	guesses, err := s.repo.ListTop(s.ctx, &ListGuessesInput{GameID: "empty"})
	s.Require().NoError(err)
	s.Empty(guesses)
}

func (s *LedgerTestSuite) TestSimilarityRoundTripsExactly() {
	out, err := s.repo.Upsert(s.ctx, &UpsertInput{
		GameID:     s.gameID,
		GuessID:    "id",
		Word:       "vehicle",
		UserID:     "user-a",
		Rank:       3,
		Similarity: 0.1 + 0.2,
		Now:        s.testNow,
	})
	s.Require().NoError(err)
	s.Equal(0.1+0.2, out.Guess.Similarity)
}

func (s *LedgerTestSuite) TestListTopAndLatest() {
	s.upsert("airplane", "user-a", 5000, s.testNow)
	s.upsert("vehicle", "user-a", 3, s.testNow.Add(1*time.Second))
	s.upsert("boat", "user-b", 40, s.testNow.Add(2*time.Second))
	s.upsert("airplane", "user-c", 5000, s.testNow.Add(3*time.Second))

	top, err := s.repo.ListTop(s.ctx, &ListGuessesInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Equal([]string{"vehicle", "boat", "airplane"}, words(top))

	top, err = s.repo.ListTop(s.ctx, &ListGuessesInput{GameID: s.gameID, Limit: 2})
	s.Require().NoError(err)
	s.Equal([]string{"vehicle", "boat"}, words(top))

	latest, err := s.repo.ListLatest(s.ctx, &ListGuessesInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Equal([]string{"airplane", "boat", "vehicle"}, words(latest))
	s.Equal("user-c", latest[0].LatestUserID)
	s.Equal(1, latest[0].Sequence)

	latest, err = s.repo.ListLatest(s.ctx, &ListGuessesInput{GameID: s.gameID, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"airplane"}, words(latest))
}

func (s *LedgerTestSuite) TestGamesAreIsolated() {
	s.upsert("vehicle", "user-a", 3, s.testNow)

	out, err := s.repo.Upsert(s.ctx, &UpsertInput{
		GameID:  "other-game",
		GuessID: "other",
		Word:    "vehicle",
		UserID:  "user-a",
		Rank:    7,
		Now:     s.testNow,
	})
	s.Require().NoError(err)
	s.True(out.IsNew)
	s.False(out.HadGuesses)
	s.Equal(1, out.Guess.Sequence)
	s.Equal(7, out.Guess.Rank)
}

func (s *LedgerTestSuite) TestUpsertValidatesInput() {
	_, err := s.repo.Upsert(s.ctx, nil)
	s.Error(err)

	_, err = s.repo.Upsert(s.ctx, &UpsertInput{GameID: s.gameID})
	s.Error(err)
}

func (s *LedgerTestSuite) TestWinners() {
	_, err := s.repo.GetWinner(s.ctx, &GetWinnerInput{GameID: s.gameID, UserID: "user-a"})
	s.ErrorIs(err, ErrWinnerNotFound)

	second := &models.Winner{GameID: s.gameID, UserID: "user-b", Sequence: 7, CreatedAt: s.testNow.Add(time.Minute)}
	first := &models.Winner{GameID: s.gameID, UserID: "user-a", Sequence: 3, CreatedAt: s.testNow}

	s.Require().NoError(s.repo.AddWinner(s.ctx, &AddWinnerInput{Winner: second}))
	s.Require().NoError(s.repo.AddWinner(s.ctx, &AddWinnerInput{Winner: first}))

	err = s.repo.AddWinner(s.ctx, &AddWinnerInput{Winner: &models.Winner{
		GameID: s.gameID, UserID: "user-a", Sequence: 99, CreatedAt: s.testNow,
	}})
	s.ErrorIs(err, ErrWinnerExists)

	got, err := s.repo.GetWinner(s.ctx, &GetWinnerInput{GameID: s.gameID, UserID: "user-a"})
	s.Require().NoError(err)
	s.Equal(3, got.Sequence)

	winners, err := s.repo.ListWinners(s.ctx, &ListWinnersInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Require().Len(winners, 2)
	s.Equal("user-a", winners[0].UserID)
	s.Equal("user-b", winners[1].UserID)
}

func (s *LedgerTestSuite) TestConcurrentUpsertsAllocateUniqueSequences() {
	const (
		workers  = 20
		perGroup = 15
	)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		news  = make(map[string]int)
		seqOf = make(map[string]map[int]bool)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perGroup; i++ {
				// every worker overlaps on half of its words
				word := fmt.Sprintf("word-%d", (w%2)*perGroup+i)
				out, err := s.repo.Upsert(s.ctx, &UpsertInput{
					GameID:  s.gameID,
					GuessID: fmt.Sprintf("%d-%d", w, i),
					Word:    word,
					UserID:  fmt.Sprintf("user-%d", w),
					Rank:    100 + i,
					Now:     s.testNow,
				})
				if !s.NoError(err) {
					return
				}

				mu.Lock()
				if out.IsNew {
					news[word]++
				}
				if seqOf[word] == nil {
					seqOf[word] = make(map[int]bool)
				}
				seqOf[word][out.Guess.Sequence] = true
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	distinct := 2 * perGroup
	count, err := s.repo.Count(s.ctx, &CountInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Equal(distinct, count)

	used := make(map[int]bool)
	for word, n := range news {
		s.Equal(1, n, "word %s reported new more than once", word)
	}
	s.Len(news, distinct)
	for word, seqs := range seqOf {
		s.Len(seqs, 1, "word %s saw several sequences", word)
		for seq := range seqs {
			s.False(used[seq], "sequence %d reused", seq)
			used[seq] = true
		}
	}
	for seq := 1; seq <= distinct; seq++ {
		s.True(used[seq], "sequence %d missing", seq)
	}
}

func (s *LedgerTestSuite) TestExpireDropsFinishedLedger() {
	s.upsert("airplane", "user-a", 5000, s.testNow)
	s.upsert("car", "user-b", 0, s.testNow.Add(time.Second))
	s.Require().NoError(s.repo.AddWinner(s.ctx, &AddWinnerInput{
		Winner: &models.Winner{GameID: s.gameID, UserID: "user-b", Sequence: 2, CreatedAt: s.testNow},
	}))

	other := "other-game"
	_, err := s.repo.Upsert(s.ctx, &UpsertInput{GameID: other, GuessID: "x", Word: "boat", UserID: "user-a", Rank: 10, Now: s.testNow})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Expire(s.ctx, &ExpireInput{GameID: s.gameID, TTL: time.Hour}))

	// still readable until the TTL passes
	s.advance(30 * time.Minute)
	count, err := s.repo.Count(s.ctx, &CountInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Equal(2, count)

	s.advance(time.Hour)
	count, err = s.repo.Count(s.ctx, &CountInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Zero(count)
	winners, err := s.repo.ListWinners(s.ctx, &ListWinnersInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.Empty(winners)
	top, err := s.repo.TopRank(s.ctx, &TopRankInput{GameID: s.gameID})
	s.Require().NoError(err)
	s.False(top.Found)

	// games without a deadline are untouched
	count, err = s.repo.Count(s.ctx, &CountInput{GameID: other})
	s.Require().NoError(err)
	s.Equal(1, count)

	if s.mr != nil {
		for _, key := range s.mr.Keys() {
			s.NotContains(key, s.gameID)
		}
	}
}

func (s *LedgerTestSuite) TestExpireValidatesInput() {
	s.Error(s.repo.Expire(s.ctx, nil))
	s.Error(s.repo.Expire(s.ctx, &ExpireInput{GameID: s.gameID}))
	s.Error(s.repo.Expire(s.ctx, &ExpireInput{TTL: time.Hour}))
}

func words(guesses []*models.Guess) []string {
	out := make([]string, len(guesses))
	for i, g := range guesses {
		out[i] = g.Word
	}
	return out
}
