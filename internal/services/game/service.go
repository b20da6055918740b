package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/similarium/internal/common/clock"
	"github.com/KirkDiggler/similarium/internal/common/uuid"
	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/picker"
	gameRepo "github.com/KirkDiggler/similarium/internal/repositories/game"
	ledgerRepo "github.com/KirkDiggler/similarium/internal/repositories/guess_ledger"
	"github.com/KirkDiggler/similarium/internal/services/messaging"
	"github.com/KirkDiggler/similarium/internal/services/milestone"
	"github.com/KirkDiggler/similarium/internal/similarity"
	"github.com/KirkDiggler/similarium/internal/words"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	gameRepo   gameRepo.Repository
	ledgerRepo ledgerRepo.Repository
	oracle     similarity.Oracle
	picker     *picker.Picker
	evaluator  *milestone.Evaluator
	normalizer *words.Normalizer
	messaging  messaging.Service
	clock      clock.Clock
	uuid       uuid.UUID
	logger     zerolog.Logger
	retention  time.Duration

	gameLocks    *keyedMutex
	channelLocks *keyedMutex
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}
	if cfg.Oracle == nil {
		return nil, ErrNilOracle
	}
	if cfg.Picker == nil {
		return nil, ErrNilPicker
	}
	if cfg.Evaluator == nil {
		return nil, ErrNilEvaluator
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = words.NewNormalizer(nil)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "game").Logger()
	}

	retention := cfg.LedgerRetention
	if retention <= 0 {
		retention = DefaultLedgerRetention
	}

	return &service{
		gameRepo:     cfg.GameRepo,
		ledgerRepo:   cfg.LedgerRepo,
		oracle:       cfg.Oracle,
		picker:       cfg.Picker,
		evaluator:    cfg.Evaluator,
		normalizer:   normalizer,
		messaging:    cfg.Messaging,
		clock:        cfg.Clock,
		uuid:         cfg.UUID,
		logger:       logger,
		retention:    retention,
		gameLocks:    newKeyedMutex(),
		channelLocks: newKeyedMutex(),
	}, nil
}

func (s *service) getGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: gameID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (s *service) saveGame(ctx context.Context, game *models.Game) error {
	err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game: game,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrVersionConflict) {
			return ErrStorageConflict
		}
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (s *service) hasWon(ctx context.Context, gameID, userID string) (bool, error) {
	_, err := s.ledgerRepo.GetWinner(ctx, &ledgerRepo.GetWinnerInput{
		GameID: gameID,
		UserID: userID,
	})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ledgerRepo.ErrWinnerNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check winner: %w", err)
}

// Submit scores a guess and reports what it changed
func (s *service) Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive() {
		return nil, ErrGameNotActive
	}

	won, err := s.hasWon(ctx, game.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if won {
		return nil, ErrAlreadyWon
	}

	word := s.normalizer.Normalize(input.Text)
	if word == "" {
		return nil, ErrEmptyGuess
	}

	log := s.logger.With().
		Str("game_id", game.ID).
		Str("channel_id", game.ChannelID).
		Str("user_id", input.UserID).
		Str("word", word).
		Logger()

	// The oracle may block on I/O, so it runs before the game is locked
	sim, err := s.oracle.RankOf(ctx, game.Secret, word)
	if err != nil {
		if errors.Is(err, similarity.ErrWordNotFound) {
			log.Debug().Msg("guess not in vocabulary")
			return nil, ErrNotFound
		}
		log.Warn().Err(err).Msg("similarity lookup failed")
		return nil, fmt.Errorf("%w: %w", ErrTransientOracle, err)
	}

	unlock := s.gameLocks.Lock(game.ID)
	defer unlock()

	// The game may have ended or the user may have won while we waited
	game, err = s.getGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive() {
		return nil, ErrGameNotActive
	}
	won, err = s.hasWon(ctx, game.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if won {
		return nil, ErrAlreadyWon
	}

	now := s.clock.Now()

	upserted, err := s.ledgerRepo.Upsert(ctx, &ledgerRepo.UpsertInput{
		GameID:     game.ID,
		GuessID:    s.uuid.NewUUID(),
		Word:       word,
		UserID:     input.UserID,
		Rank:       sim.Rank,
		Similarity: sim.Similarity,
		Now:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record guess: %w", err)
	}

	previousTop := milestone.NoGuessesRank
	if upserted.HadGuesses {
		previousTop = upserted.PreviousTopRank
	}

	guess := upserted.Guess
	output := &SubmitOutput{
		Guess: guess,
		IsNew: upserted.IsNew,
	}

	switch {
	case guess.IsSecret():
		event, err := s.recordWin(ctx, game, guess, input.UserID, now)
		if err != nil {
			return nil, err
		}
		log.Info().Int("sequence", event.Winner.Sequence).Msg("secret found")
		output.Events = append(output.Events, event)

	case upserted.IsNew:
		for _, bucket := range milestone.CrossedBuckets(previousTop, guess.Rank) {
			log.Info().Int("bucket", bucket).Int("rank", guess.Rank).Msg("milestone reached")
			output.Events = append(output.Events, s.milestoneEvent(ctx, game, guess, input.UserID, bucket, now))
		}
	}

	if len(output.Events) == 0 {
		output.Events = append(output.Events, &models.Event{
			Type:      models.EventTypeGuessAccepted,
			GameID:    game.ID,
			ChannelID: game.ChannelID,
			UserID:    input.UserID,
			Guess:     guess,
			Timestamp: now,
		})
	}

	return output, nil
}

// recordWin stores the winner association and builds the win event. The
// first submitter of the secret keeps the sequence of their guess; anyone
// re-submitting it later is placed at the current guess count.
func (s *service) recordWin(ctx context.Context, game *models.Game, guess *models.Guess, userID string, now time.Time) (*models.Event, error) {
	sequence := guess.Sequence
	if guess.UserID != userID {
		count, err := s.ledgerRepo.Count(ctx, &ledgerRepo.CountInput{
			GameID: game.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count guesses: %w", err)
		}
		sequence = count
	}

	winner := &models.Winner{
		GameID:    game.ID,
		UserID:    userID,
		Sequence:  sequence,
		CreatedAt: now,
	}
	err := s.ledgerRepo.AddWinner(ctx, &ledgerRepo.AddWinnerInput{
		Winner: winner,
	})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrWinnerExists) {
			return nil, ErrAlreadyWon
		}
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}

	event := &models.Event{
		Type:      models.EventTypeGameWon,
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		UserID:    userID,
		Guess:     guess,
		Winner:    winner,
		Timestamp: now,
	}

	if s.messaging != nil {
		place := 1
		winners, err := s.ledgerRepo.ListWinners(ctx, &ledgerRepo.ListWinnersInput{
			GameID: game.ID,
		})
		if err == nil {
			place = len(winners)
		}

		msg, err := s.messaging.GetWinMessage(ctx, &messaging.GetWinMessageInput{
			UserID:   userID,
			Secret:   game.Secret,
			Sequence: sequence,
			Place:    place,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to build win message")
		} else {
			event.Message = msg.Message
		}
	}

	return event, nil
}

func (s *service) milestoneEvent(ctx context.Context, game *models.Game, guess *models.Guess, userID string, bucket int, now time.Time) *models.Event {
	event := &models.Event{
		Type:      models.EventTypeMilestoneReached,
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		UserID:    userID,
		Bucket:    bucket,
		Guess:     guess,
		Timestamp: now,
	}

	if s.messaging != nil {
		msg, err := s.messaging.GetMilestoneMessage(ctx, &messaging.GetMilestoneMessageInput{
			Bucket: bucket,
			UserID: userID,
			Word:   guess.Word,
			Rank:   guess.Rank,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to build milestone message")
		} else {
			event.Message = msg.Message
		}
	}

	return event
}

// StartGame opens the next puzzle in a channel
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.channelLocks.Lock(input.ChannelID)
	defer unlock()

	log := s.logger.With().Str("channel_id", input.ChannelID).Logger()
	output := &StartGameOutput{}

	current, err := s.gameRepo.GetGameByChannel(ctx, &gameRepo.GetGameByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get channel game: %w", err)
	}

	if current != nil && current.IsActive() {
		if input.Scheduled {
			count, err := s.ledgerRepo.Count(ctx, &ledgerRepo.CountInput{
				GameID: current.ID,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to count guesses: %w", err)
			}
			if count == 0 {
				log.Info().Str("game_id", current.ID).Msg("previous game has no guesses, not starting a new one")
				output.Game = current
				output.Skipped = true
				return output, nil
			}
		}

		ended, event, err := s.endGame(ctx, current)
		if err != nil {
			return nil, err
		}
		output.Previous = ended
		output.Events = append(output.Events, event)
	}

	puzzleNumber, err := s.gameRepo.NextPuzzleNumber(ctx, &gameRepo.NextPuzzleNumberInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate puzzle number: %w", err)
	}

	secret := s.picker.Pick(input.ChannelID, puzzleNumber)

	if err := s.oracle.Prepare(ctx, secret); err != nil {
		log.Error().Err(err).Int("puzzle_number", puzzleNumber).Msg("failed to prepare secret")
		return nil, fmt.Errorf("%w: %w", ErrTransientOracle, err)
	}

	now := s.clock.Now()
	game := &models.Game{
		ID:           s.uuid.NewUUID(),
		ChannelID:    input.ChannelID,
		PuzzleNumber: puzzleNumber,
		Secret:       secret,
		Status:       models.GameStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info().
		Str("game_id", game.ID).
		Int("puzzle_number", puzzleNumber).
		Bool("scheduled", input.Scheduled).
		Msg("game started")

	output.Game = game
	output.Events = append(output.Events, &models.Event{
		Type:      models.EventTypeGameStarted,
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		Message:   fmt.Sprintf("Puzzle #%d has started. Start guessing!", puzzleNumber),
		Timestamp: now,
	})

	return output, nil
}

// EndGame closes the active puzzle of a channel
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.channelLocks.Lock(input.ChannelID)
	defer unlock()

	current, err := s.gameRepo.GetGameByChannel(ctx, &gameRepo.GetGameByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get channel game: %w", err)
	}
	if !current.IsActive() {
		return nil, ErrGameNotFound
	}

	ended, event, err := s.endGame(ctx, current)
	if err != nil {
		return nil, err
	}

	return &EndGameOutput{
		Game:   ended,
		Events: []*models.Event{event},
	}, nil
}

// endGame deactivates a game under its lock so no guess lands afterwards
func (s *service) endGame(ctx context.Context, game *models.Game) (*models.Game, *models.Event, error) {
	unlock := s.gameLocks.Lock(game.ID)
	defer unlock()

	game, err := s.getGame(ctx, game.ID)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	game.Status = models.GameStatusEnded
	game.UpdatedAt = now
	game.EndedAt = &now

	if err := s.saveGame(ctx, game); err != nil {
		return nil, nil, err
	}

	count, err := s.ledgerRepo.Count(ctx, &ledgerRepo.CountInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count guesses: %w", err)
	}
	winners, err := s.ledgerRepo.ListWinners(ctx, &ledgerRepo.ListWinnersInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list winners: %w", err)
	}

	// The game is saved as ended, so nothing can add to the ledger now
	if err := s.ledgerRepo.Expire(ctx, &ledgerRepo.ExpireInput{
		GameID: game.ID,
		TTL:    s.retention,
	}); err != nil {
		s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to schedule ledger expiry")
	}

	s.logger.Info().
		Str("game_id", game.ID).
		Str("channel_id", game.ChannelID).
		Int("guess_count", count).
		Int("winner_count", len(winners)).
		Msg("game ended")

	event := &models.Event{
		Type:      models.EventTypeGameEnded,
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		Timestamp: now,
	}

	if s.messaging != nil {
		msg, err := s.messaging.GetGameEndedMessage(ctx, &messaging.GetGameEndedMessageInput{
			PuzzleNumber: game.PuzzleNumber,
			Secret:       game.Secret,
			GuessCount:   count,
			WinnerCount:  len(winners),
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to build game ended message")
		} else {
			event.Message = msg.Message
		}
	}

	return game, event, nil
}

// EvaluateTaunt decides whether a stuck game should be taunted and, if so,
// moves the game's taunt index to the current guess count
func (s *service) EvaluateTaunt(ctx context.Context, input *EvaluateTauntInput) (*EvaluateTauntOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.gameLocks.Lock(input.GameID)
	defer unlock()

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive() {
		return &EvaluateTauntOutput{}, nil
	}

	count, err := s.ledgerRepo.Count(ctx, &ledgerRepo.CountInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count guesses: %w", err)
	}
	top, err := s.ledgerRepo.TopRank(ctx, &ledgerRepo.TopRankInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get top rank: %w", err)
	}
	if !top.Found {
		return &EvaluateTauntOutput{}, nil
	}

	taunt := s.evaluator.ShouldTaunt(&milestone.ShouldTauntInput{
		GuessCount: count,
		TauntIndex: game.TauntIndex,
		TopRank:    top.Rank,
	})
	if !taunt {
		return &EvaluateTauntOutput{}, nil
	}

	now := s.clock.Now()
	game.TauntIndex = count
	game.UpdatedAt = now
	if err := s.saveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("game_id", game.ID).
		Int("guess_count", count).
		Int("top_rank", top.Rank).
		Msg("taunting channel")

	event := &models.Event{
		Type:      models.EventTypeTaunt,
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		Timestamp: now,
	}

	best, err := s.ledgerRepo.ListTop(ctx, &ledgerRepo.ListGuessesInput{
		GameID: game.ID,
		Limit:  1,
	})
	if err == nil && len(best) > 0 {
		event.Guess = best[0]
	}

	if s.messaging != nil && event.Guess != nil {
		msg, err := s.messaging.GetTauntMessage(ctx, &messaging.GetTauntMessageInput{
			GuessCount: count,
			TopWord:    event.Guess.Word,
			TopRank:    event.Guess.Rank,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to build taunt message")
		} else {
			event.Message = msg.Message
		}
	}

	return &EvaluateTauntOutput{
		Taunted: true,
		Event:   event,
	}, nil
}

// GetGameSummary returns the state of a game and its best guesses
func (s *service) GetGameSummary(ctx context.Context, input *GetGameSummaryInput) (*GetGameSummaryOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}

	count, err := s.ledgerRepo.Count(ctx, &ledgerRepo.CountInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count guesses: %w", err)
	}
	top, err := s.ledgerRepo.TopRank(ctx, &ledgerRepo.TopRankInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get top rank: %w", err)
	}
	best, err := s.ledgerRepo.ListTop(ctx, &ledgerRepo.ListGuessesInput{
		GameID: game.ID,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list top guesses: %w", err)
	}
	latest, err := s.ledgerRepo.ListLatest(ctx, &ledgerRepo.ListGuessesInput{
		GameID: game.ID,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list latest guesses: %w", err)
	}
	winners, err := s.ledgerRepo.ListWinners(ctx, &ledgerRepo.ListWinnersInput{
		GameID: game.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}

	return &GetGameSummaryOutput{
		Game:       game,
		GuessCount: count,
		TopRank:    top.Rank,
		HasGuesses: top.Found,
		Top:        best,
		Latest:     latest,
		Winners:    winners,
	}, nil
}

// ListActiveGames returns the games a scheduler may want to end
func (s *service) ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error) {
	output, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	games := output.Games
	if games == nil {
		games = []*models.Game{}
	}

	return &ListActiveGamesOutput{
		Games: games,
	}, nil
}
