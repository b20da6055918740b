package guess_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/redis/go-redis/v9"
)

// All keys of one game share the {gameID} hash tag so the upsert script can
// touch them in a single slot.
const (
	ledgerKeyPrefix = "ledger:"
	guessKeyPart    = ":guess:"
	seqKeySuffix    = ":seq"
	ranksKeySuffix  = ":ranks"
	latestKeySuffix = ":latest"
	winnersSuffix   = ":winners"
)

// upsertScript inserts or touches a guess and reports the best rank seen
// before the change.
//
// KEYS: guess hash, sequence counter, ranks zset, latest zset
// ARGV: word, id, user, rank, similarity, now (unix ms)
// Returns: {isNew, hadGuesses, previousTopRank, HGETALL guess}
var upsertScript = redis.NewScript(`
local prevTop = 0
local hadGuesses = 0
local best = redis.call('ZRANGE', KEYS[3], 0, 0, 'WITHSCORES')
if #best > 0 then
	hadGuesses = 1
	prevTop = tonumber(best[2])
end

local isNew = 0
if redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('HSET', KEYS[1], 'latest_user_id', ARGV[3], 'updated_at', ARGV[6])
else
	isNew = 1
	local seq = redis.call('INCR', KEYS[2])
	redis.call('HSET', KEYS[1],
		'id', ARGV[2],
		'word', ARGV[1],
		'rank', ARGV[4],
		'similarity', ARGV[5],
		'sequence', seq,
		'user_id', ARGV[3],
		'latest_user_id', ARGV[3],
		'updated_at', ARGV[6])
	redis.call('ZADD', KEYS[3], ARGV[4], ARGV[1])
end
redis.call('ZADD', KEYS[4], ARGV[6], ARGV[1])

return {isNew, hadGuesses, prevTop, redis.call('HGETALL', KEYS[1])}
`)

// Config holds configuration for the Redis guess ledger
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed guess ledger
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gamePrefix(gameID string) string {
	return ledgerKeyPrefix + "{" + gameID + "}"
}

func guessKey(gameID, word string) string {
	return gamePrefix(gameID) + guessKeyPart + word
}

func seqKey(gameID string) string {
	return gamePrefix(gameID) + seqKeySuffix
}

func ranksKey(gameID string) string {
	return gamePrefix(gameID) + ranksKeySuffix
}

func latestKey(gameID string) string {
	return gamePrefix(gameID) + latestKeySuffix
}

func winnersKey(gameID string) string {
	return gamePrefix(gameID) + winnersSuffix
}

// Expire sets a TTL on every key of the game's ledger. The game must be
// closed to new guesses first or later guess hashes would outlive it.
func (r *redisRepository) Expire(ctx context.Context, input *ExpireInput) error {
	if input == nil || input.GameID == "" || input.TTL <= 0 {
		return errors.New("input, game ID and TTL cannot be empty")
	}

	words, err := r.client.ZRange(ctx, ranksKey(input.GameID), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list guessed words: %w", err)
	}

	keys := []string{
		seqKey(input.GameID),
		ranksKey(input.GameID),
		latestKey(input.GameID),
		winnersKey(input.GameID),
	}
	for _, word := range words {
		keys = append(keys, guessKey(input.GameID, word))
	}

	pipe := r.client.Pipeline()
	for _, key := range keys {
		pipe.Expire(ctx, key, input.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to expire ledger: %w", err)
	}

	return nil
}

// Upsert records a guess atomically
func (r *redisRepository) Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error) {
	if input == nil || input.GameID == "" || input.Word == "" {
		return nil, errors.New("input, game ID and word cannot be empty")
	}

	keys := []string{
		guessKey(input.GameID, input.Word),
		seqKey(input.GameID),
		ranksKey(input.GameID),
		latestKey(input.GameID),
	}
	args := []interface{}{
		input.Word,
		input.GuessID,
		input.UserID,
		input.Rank,
		strconv.FormatFloat(input.Similarity, 'g', -1, 64),
		input.Now.UnixMilli(),
	}

	res, err := upsertScript.Run(ctx, r.client, keys, args...).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert guess: %w", err)
	}
	if len(res) != 4 {
		return nil, fmt.Errorf("unexpected upsert reply length %d", len(res))
	}

	isNew, _ := res[0].(int64)
	hadGuesses, _ := res[1].(int64)
	prevTop, _ := res[2].(int64)
	fields, ok := res[3].([]interface{})
	if !ok {
		return nil, errors.New("unexpected upsert reply for guess")
	}

	guess, err := guessFromFields(input.GameID, pairsToMap(fields))
	if err != nil {
		return nil, err
	}

	return &UpsertOutput{
		Guess:           guess,
		IsNew:           isNew == 1,
		HadGuesses:      hadGuesses == 1,
		PreviousTopRank: int(prevTop),
	}, nil
}

// TopRank returns the lowest rank in the game
func (r *redisRepository) TopRank(ctx context.Context, input *TopRankInput) (*TopRankOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	best, err := r.client.ZRangeWithScores(ctx, ranksKey(input.GameID), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top rank: %w", err)
	}
	if len(best) == 0 {
		return &TopRankOutput{}, nil
	}

	return &TopRankOutput{
		Rank:  int(best[0].Score),
		Found: true,
	}, nil
}

// Count returns the number of distinct guesses in the game
func (r *redisRepository) Count(ctx context.Context, input *CountInput) (int, error) {
	if input == nil || input.GameID == "" {
		return 0, errors.New("input and game ID cannot be empty")
	}

	count, err := r.client.ZCard(ctx, ranksKey(input.GameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count guesses: %w", err)
	}

	return int(count), nil
}

// ListTop returns guesses ordered by rank
func (r *redisRepository) ListTop(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	words, err := r.client.ZRange(ctx, ranksKey(input.GameID), 0, stop(input.Limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list top guesses: %w", err)
	}

	return r.loadGuesses(ctx, input.GameID, words)
}

// ListLatest returns guesses ordered by last submission, newest first
func (r *redisRepository) ListLatest(ctx context.Context, input *ListGuessesInput) ([]*models.Guess, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	words, err := r.client.ZRevRange(ctx, latestKey(input.GameID), 0, stop(input.Limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list latest guesses: %w", err)
	}

	return r.loadGuesses(ctx, input.GameID, words)
}

func stop(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit - 1)
}

func (r *redisRepository) loadGuesses(ctx context.Context, gameID string, words []string) ([]*models.Guess, error) {
	if len(words) == 0 {
		return []*models.Guess{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(words))
	for i, word := range words {
		cmds[i] = pipe.HGetAll(ctx, guessKey(gameID, word))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load guesses: %w", err)
	}

	guesses := make([]*models.Guess, 0, len(words))
	for _, cmd := range cmds {
		guess, err := guessFromFields(gameID, cmd.Val())
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, guess)
	}

	return guesses, nil
}

// AddWinner records a win unless the user already has one
func (r *redisRepository) AddWinner(ctx context.Context, input *AddWinnerInput) error {
	if input == nil || input.Winner == nil || input.Winner.GameID == "" || input.Winner.UserID == "" {
		return errors.New("input, game ID and user ID cannot be empty")
	}

	winnerJSON, err := json.Marshal(input.Winner)
	if err != nil {
		return fmt.Errorf("failed to marshal winner: %w", err)
	}

	added, err := r.client.HSetNX(ctx, winnersKey(input.Winner.GameID), input.Winner.UserID, winnerJSON).Result()
	if err != nil {
		return fmt.Errorf("failed to add winner: %w", err)
	}
	if !added {
		return ErrWinnerExists
	}

	return nil
}

// GetWinner returns the win of a user
func (r *redisRepository) GetWinner(ctx context.Context, input *GetWinnerInput) (*models.Winner, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	winnerJSON, err := r.client.HGet(ctx, winnersKey(input.GameID), input.UserID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	var winner models.Winner
	if err := json.Unmarshal([]byte(winnerJSON), &winner); err != nil {
		return nil, fmt.Errorf("failed to unmarshal winner: %w", err)
	}

	return &winner, nil
}

// ListWinners returns winners ordered by the sequence of their win
func (r *redisRepository) ListWinners(ctx context.Context, input *ListWinnersInput) ([]*models.Winner, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	values, err := r.client.HVals(ctx, winnersKey(input.GameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}

	winners := make([]*models.Winner, 0, len(values))
	for _, value := range values {
		var winner models.Winner
		if err := json.Unmarshal([]byte(value), &winner); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winner: %w", err)
		}
		winners = append(winners, &winner)
	}

	sortWinners(winners)

	return winners, nil
}

func sortWinners(winners []*models.Winner) {
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Sequence != winners[j].Sequence {
			return winners[i].Sequence < winners[j].Sequence
		}
		return winners[i].CreatedAt.Before(winners[j].CreatedAt)
	})
}

func pairsToMap(pairs []interface{}) map[string]string {
	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		value, _ := pairs[i+1].(string)
		fields[key] = value
	}
	return fields
}

func guessFromFields(gameID string, fields map[string]string) (*models.Guess, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("guess missing from game %s", gameID)
	}

	rank, err := strconv.Atoi(fields["rank"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse rank: %w", err)
	}
	similarity, err := strconv.ParseFloat(fields["similarity"], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse similarity: %w", err)
	}
	sequence, err := strconv.Atoi(fields["sequence"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse sequence: %w", err)
	}
	updated, err := strconv.ParseInt(fields["updated_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &models.Guess{
		ID:           fields["id"],
		GameID:       gameID,
		Word:         fields["word"],
		Rank:         rank,
		Similarity:   similarity,
		Sequence:     sequence,
		UserID:       fields["user_id"],
		LatestUserID: fields["latest_user_id"],
		UpdatedAt:    time.UnixMilli(updated).UTC(),
	}, nil
}
