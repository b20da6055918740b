package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/similarium/internal/common/clock"
	"github.com/KirkDiggler/similarium/internal/common/uuid"
	"github.com/KirkDiggler/similarium/internal/dice"
	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/picker"
	gameRepo "github.com/KirkDiggler/similarium/internal/repositories/game"
	ledgerRepo "github.com/KirkDiggler/similarium/internal/repositories/guess_ledger"
	"github.com/KirkDiggler/similarium/internal/services/messaging"
	"github.com/KirkDiggler/similarium/internal/services/milestone"
	"github.com/KirkDiggler/similarium/internal/similarity"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// GameScenarioTestSuite plays whole games against real repositories
type GameScenarioTestSuite struct {
	suite.Suite
	mr          *miniredis.Miniredis
	client      *redis.Client
	oracle      *similarity.Static
	gameService Service
	ctx         context.Context
	channelID   string
}

func (s *GameScenarioTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	ledger, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.oracle = similarity.NewStatic()
	s.oracle.Set("car", "airplane", 5000, 12.5)
	s.oracle.Set("car", "vehicle", 3, 71.2)
	s.oracle.Set("car", "truck", 40, 55.1)

	// A single word list makes every puzzle's secret "car"
	p, err := picker.New([]string{"car"})
	s.Require().NoError(err)

	roller := dice.New(&dice.Config{Seed: 42})
	evaluator, err := milestone.New(&milestone.Config{Roller: roller})
	s.Require().NoError(err)
	msgs, err := messaging.NewService(&messaging.ServiceConfig{Roller: roller})
	s.Require().NoError(err)

	svc, err := New(&Config{
		GameRepo:   games,
		LedgerRepo: ledger,
		Oracle:     s.oracle,
		Picker:     p,
		Evaluator:  evaluator,
		Messaging:  msgs,
		Clock:      &clock.DefaultClock{},
		UUID:       uuid.New(),
	})
	s.Require().NoError(err)
	s.gameService = svc

	s.ctx = context.Background()
	s.channelID = "C123"
}

func (s *GameScenarioTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func (s *GameScenarioTestSuite) startGame() *models.Game {
	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChannelID: s.channelID})
	s.Require().NoError(err)
	s.Require().NotNil(output.Game)
	return output.Game
}

func (s *GameScenarioTestSuite) submit(gameID, userID, text string) *SubmitOutput {
	output, err := s.gameService.Submit(s.ctx, &SubmitInput{
		GameID: gameID,
		UserID: userID,
		Text:   text,
	})
	s.Require().NoError(err)
	return output
}

func eventTypes(events []*models.Event) []models.EventType {
	types := make([]models.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func (s *GameScenarioTestSuite) TestThreePlayersFindTheSecret() {
	game := s.startGame()
	s.Equal("car", game.Secret)
	s.Equal(1, game.PuzzleNumber)
	s.Equal(1, s.oracle.Prepared("car"))

	first := s.submit(game.ID, "A", "airplane")
	s.Equal(1, first.Guess.Sequence)
	s.Equal([]models.EventType{models.EventTypeGuessAccepted}, eventTypes(first.Events))

	second := s.submit(game.ID, "B", "vehicle")
	s.Equal(2, second.Guess.Sequence)
	s.Require().Len(second.Events, 3)
	for i, bucket := range []int{1000, 100, 10} {
		s.Equal(models.EventTypeMilestoneReached, second.Events[i].Type)
		s.Equal(bucket, second.Events[i].Bucket)
		s.Equal("B", second.Events[i].UserID)
		s.NotEmpty(second.Events[i].Message)
	}

	third := s.submit(game.ID, "C", "car")
	s.Equal(3, third.Guess.Sequence)
	s.Require().Len(third.Events, 1)
	s.Equal(models.EventTypeGameWon, third.Events[0].Type)
	s.Equal("C", third.Events[0].Winner.UserID)
	s.Equal(3, third.Events[0].Winner.Sequence)
	s.Contains(third.Events[0].Message, "<@C>")

	_, err := s.gameService.Submit(s.ctx, &SubmitInput{GameID: game.ID, UserID: "C", Text: "truck"})
	s.ErrorIs(err, ErrAlreadyWon)

	summary, err := s.gameService.GetGameSummary(s.ctx, &GetGameSummaryInput{GameID: game.ID})
	s.Require().NoError(err)
	s.Equal(3, summary.GuessCount)
	s.Equal(0, summary.TopRank)
	s.Require().Len(summary.Top, 3)
	s.Equal("car", summary.Top[0].Word)
	s.Equal("vehicle", summary.Top[1].Word)
	s.Require().Len(summary.Winners, 1)
}

func (s *GameScenarioTestSuite) TestRepeatedGuessKeepsFirstSubmitter() {
	game := s.startGame()

	s.submit(game.ID, "A", "vehicle")
	repeat := s.submit(game.ID, "B", "Vehicle")

	s.False(repeat.IsNew)
	s.Equal(1, repeat.Guess.Sequence)
	s.Equal("A", repeat.Guess.UserID)
	s.Equal("B", repeat.Guess.LatestUserID)
	s.Equal([]models.EventType{models.EventTypeGuessAccepted}, eventTypes(repeat.Events))
}

func (s *GameScenarioTestSuite) TestLaterFinderGetsCurrentCount() {
	game := s.startGame()

	s.submit(game.ID, "A", "car")
	s.submit(game.ID, "B", "airplane")
	s.submit(game.ID, "B", "truck")
	late := s.submit(game.ID, "C", "car")

	s.Require().Len(late.Events, 1)
	s.Equal(3, late.Events[0].Winner.Sequence)
}

func (s *GameScenarioTestSuite) TestUnknownWordIsNotRecorded() {
	game := s.startGame()

	_, err := s.gameService.Submit(s.ctx, &SubmitInput{GameID: game.ID, UserID: "A", Text: "zzzz"})
	s.ErrorIs(err, ErrNotFound)

	summary, err := s.gameService.GetGameSummary(s.ctx, &GetGameSummaryInput{GameID: game.ID})
	s.Require().NoError(err)
	s.Equal(0, summary.GuessCount)
	s.False(summary.HasGuesses)
}

func (s *GameScenarioTestSuite) TestRestartEndsGameAndBlocksGuesses() {
	first := s.startGame()
	s.submit(first.ID, "A", "truck")

	active, err := s.gameService.ListActiveGames(s.ctx, &ListActiveGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(active.Games, 1)
	s.Equal(first.ID, active.Games[0].ID)

	restart, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChannelID: s.channelID})
	s.Require().NoError(err)
	s.Require().NotNil(restart.Previous)
	s.Equal(first.ID, restart.Previous.ID)
	s.Equal(2, restart.Game.PuzzleNumber)

	_, err = s.gameService.Submit(s.ctx, &SubmitInput{GameID: first.ID, UserID: "A", Text: "vehicle"})
	s.ErrorIs(err, ErrGameNotActive)

	ended, err := s.gameService.EndGame(s.ctx, &EndGameInput{ChannelID: s.channelID})
	s.Require().NoError(err)
	s.Equal(restart.Game.ID, ended.Game.ID)
	s.Equal(models.GameStatusEnded, ended.Game.Status)

	active, err = s.gameService.ListActiveGames(s.ctx, &ListActiveGamesInput{})
	s.Require().NoError(err)
	s.Empty(active.Games)

	// the first game's ledger is kept for a while, then dropped
	summary, err := s.gameService.GetGameSummary(s.ctx, &GetGameSummaryInput{GameID: first.ID})
	s.Require().NoError(err)
	s.Equal(1, summary.GuessCount)
	s.mr.FastForward(DefaultLedgerRetention + time.Minute)
	summary, err = s.gameService.GetGameSummary(s.ctx, &GetGameSummaryInput{GameID: first.ID})
	s.Require().NoError(err)
	s.Zero(summary.GuessCount)

	_, err = s.gameService.EndGame(s.ctx, &EndGameInput{ChannelID: s.channelID})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameScenarioTestSuite) TestScheduledStartSkipsUnplayedGame() {
	game := s.startGame()

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChannelID: s.channelID, Scheduled: true})
	s.Require().NoError(err)
	s.True(output.Skipped)
	s.Equal(game.ID, output.Game.ID)
}

func (s *GameScenarioTestSuite) TestConcurrentSubmissionsOfSameWord() {
	game := s.startGame()

	const players = 20
	var wg sync.WaitGroup
	results := make([]*SubmitOutput, players)
	errs := make([]error, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.gameService.Submit(s.ctx, &SubmitInput{
				GameID: game.ID,
				UserID: string(rune('a' + i)),
				Text:   "vehicle",
			})
		}(i)
	}
	wg.Wait()

	fresh := 0
	milestones := 0
	for i := 0; i < players; i++ {
		s.Require().NoError(errs[i])
		s.Equal(1, results[i].Guess.Sequence)
		if results[i].IsNew {
			fresh++
		}
		for _, event := range results[i].Events {
			if event.Type == models.EventTypeMilestoneReached {
				milestones++
			}
		}
	}
	s.Equal(1, fresh)
	s.Equal(3, milestones)
}

func TestGameScenarioSuite(t *testing.T) {
	suite.Run(t, new(GameScenarioTestSuite))
}
