package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix    = "game:"
	channelKeyPrefix = "channel:"
	puzzleKeySuffix  = ":puzzle"
	activeGamesKey   = "active_games"
)

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrVersionConflict is returned when the stored game changed since it was read
	ErrVersionConflict = errors.New("game was modified concurrently")
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

func channelKey(channelID string) string {
	return channelKeyPrefix + channelID
}

func puzzleKey(channelID string) string {
	return channelKeyPrefix + channelID + puzzleKeySuffix
}

// SaveGame persists a game to Redis. The stored version must match the
// game's version; on success the version is incremented in place.
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	if input.Game.ID == "" || input.Game.ChannelID == "" {
		return errors.New("game ID and channel ID cannot be empty")
	}

	key := gameKey(input.Game.ID)
	next := *input.Game
	next.Version++

	// Marshal the game to JSON
	gameJSON, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if input.Game.Version != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return err
		default:
			var current models.Game
			if err := json.Unmarshal([]byte(stored), &current); err != nil {
				return fmt.Errorf("failed to unmarshal game: %w", err)
			}
			if current.Version != input.Game.Version {
				return ErrVersionConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			pipe.Set(ctx, channelKey(next.ChannelID), next.ID, 0)

			if next.IsActive() {
				pipe.SAdd(ctx, activeGamesKey, next.ID)
			} else {
				pipe.SRem(ctx, activeGamesKey, next.ID)
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, redis.TxFailedErr) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to save game: %w", err)
	}

	input.Game.Version = next.Version

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// GetGameByChannel retrieves the latest game of a channel from Redis
func (r *redisRepository) GetGameByChannel(ctx context.Context, input *GetGameByChannelInput) (*models.Game, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	gameID, err := r.client.Get(ctx, channelKey(input.ChannelID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game ID for channel: %w", err)
	}

	return r.GetGame(ctx, &GetGameInput{
		GameID: gameID,
	})
}

// GetActiveGames retrieves all active games, oldest first
func (r *redisRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	gameIDs, err := r.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		game, err := r.GetGame(ctx, &GetGameInput{
			GameID: gameID,
		})
		if err != nil {
			// The set can briefly reference a game that was never written
			if errors.Is(err, ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

// NextPuzzleNumber atomically increments the channel's puzzle counter
func (r *redisRepository) NextPuzzleNumber(ctx context.Context, input *NextPuzzleNumberInput) (int, error) {
	if input == nil || input.ChannelID == "" {
		return 0, errors.New("input and channel ID cannot be empty")
	}

	next, err := r.client.Incr(ctx, puzzleKey(input.ChannelID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate puzzle number: %w", err)
	}

	return int(next), nil
}
