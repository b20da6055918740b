package game

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newGame(id, channelID string, status models.GameStatus) *models.Game {
	return &models.Game{
		ID:           id,
		ChannelID:    channelID,
		PuzzleNumber: 1,
		Secret:       "car",
		Status:       status,
		CreatedAt:    s.testNow,
		UpdatedAt:    s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetGame() {
	game := s.newGame("test-game-id", "test-channel-id", models.GameStatusActive)
	game.TauntIndex = 41

	err := s.repo.SaveGame(context.Background(), &SaveGameInput{
		Game: game,
	})
	s.Require().NoError(err)

	retrievedGame, err := s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.Equal(game.ID, retrievedGame.ID)
	s.Equal(game.ChannelID, retrievedGame.ChannelID)
	s.Equal(game.Secret, retrievedGame.Secret)
	s.Equal(game.PuzzleNumber, retrievedGame.PuzzleNumber)
	s.Equal(41, retrievedGame.TauntIndex)
	s.True(retrievedGame.IsActive())
	s.True(game.CreatedAt.Equal(retrievedGame.CreatedAt))

	byChannel, err := s.repo.GetGameByChannel(context.Background(), &GetGameByChannelInput{
		ChannelID: "test-channel-id",
	})
	s.Require().NoError(err)
	s.Equal(game.ID, byChannel.ID)
}

func (s *RedisRepositoryTestSuite) TestGetGameNotFound() {
	_, err := s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "missing",
	})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.repo.GetGameByChannel(context.Background(), &GetGameByChannelInput{
		ChannelID: "missing",
	})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveGameValidatesInput() {
	s.Error(s.repo.SaveGame(context.Background(), nil))
	s.Error(s.repo.SaveGame(context.Background(), &SaveGameInput{}))
	s.Error(s.repo.SaveGame(context.Background(), &SaveGameInput{
		Game: &models.Game{ID: "no-channel"},
	}))
}

func (s *RedisRepositoryTestSuite) TestChannelPointsAtLatestGame() {
	first := s.newGame("game-1", "channel-1", models.GameStatusActive)
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: first}))

	first.Status = models.GameStatusEnded
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: first}))

	second := s.newGame("game-2", "channel-1", models.GameStatusActive)
	second.PuzzleNumber = 2
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: second}))

	latest, err := s.repo.GetGameByChannel(context.Background(), &GetGameByChannelInput{
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)
	s.Equal("game-2", latest.ID)
}

func (s *RedisRepositoryTestSuite) TestSaveGameBumpsVersion() {
	game := s.newGame("game-1", "channel-1", models.GameStatusActive)

	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))
	s.Equal(1, game.Version)

	game.TauntIndex = 50
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))
	s.Equal(2, game.Version)

	stored, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Equal(2, stored.Version)
	s.Equal(50, stored.TauntIndex)
}

func (s *RedisRepositoryTestSuite) TestSaveGameRejectsStaleWrite() {
	game := s.newGame("game-1", "channel-1", models.GameStatusActive)
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	first, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "game-1"})
	s.Require().NoError(err)
	second, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "game-1"})
	s.Require().NoError(err)

	first.TauntIndex = 41
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: first}))

	second.Status = models.GameStatusEnded
	err = s.repo.SaveGame(context.Background(), &SaveGameInput{Game: second})
	s.ErrorIs(err, ErrVersionConflict)
	s.Equal(1, second.Version)

	stored, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.True(stored.IsActive())
	s.Equal(41, stored.TauntIndex)

	// a fresh game cannot overwrite an existing one
	dup := s.newGame("game-1", "channel-1", models.GameStatusActive)
	s.ErrorIs(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: dup}), ErrVersionConflict)
}

func (s *RedisRepositoryTestSuite) TestGetActiveGames() {
	active1 := s.newGame("game-1", "channel-1", models.GameStatusActive)
	active2 := s.newGame("game-2", "channel-2", models.GameStatusActive)
	active2.CreatedAt = s.testNow.Add(time.Minute)
	ended := s.newGame("game-3", "channel-3", models.GameStatusEnded)

	for _, g := range []*models.Game{active2, active1, ended} {
		s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: g}))
	}

	output, err := s.repo.GetActiveGames(context.Background(), &GetActiveGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 2)
	s.Equal("game-1", output.Games[0].ID)
	s.Equal("game-2", output.Games[1].ID)

	// ending a game removes it from the active set
	active1.Status = models.GameStatusEnded
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: active1}))

	output, err = s.repo.GetActiveGames(context.Background(), &GetActiveGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 1)
	s.Equal("game-2", output.Games[0].ID)
}

func (s *RedisRepositoryTestSuite) TestNextPuzzleNumber() {
	for want := 1; want <= 3; want++ {
		got, err := s.repo.NextPuzzleNumber(context.Background(), &NextPuzzleNumberInput{
			ChannelID: "channel-1",
		})
		s.Require().NoError(err)
		s.Equal(want, got)
	}

	// counters are per channel
	got, err := s.repo.NextPuzzleNumber(context.Background(), &NextPuzzleNumberInput{
		ChannelID: "channel-2",
	})
	s.Require().NoError(err)
	s.Equal(1, got)

	_, err = s.repo.NextPuzzleNumber(context.Background(), &NextPuzzleNumberInput{})
	s.Error(err)
}
