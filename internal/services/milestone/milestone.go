package milestone

import (
	"errors"

	"github.com/KirkDiggler/similarium/internal/dice"
)

const (
	// NoGuessesRank stands in for the top rank of a game without guesses.
	// It sits just outside the widest bucket.
	NoGuessesRank = 1001

	// DefaultTauntThreshold is how many guesses without progress are tolerated
	DefaultTauntThreshold = 40

	// DefaultTauntFactor scales down the taunt cut-off as guesses accumulate
	DefaultTauntFactor = 1.1

	// TauntRankFloor is the top rank above which nobody counts as close
	TauntRankFloor = 1000
)

// Buckets are the celebrated rank thresholds, widest first
var Buckets = []int{1000, 100, 10}

var (
	// ErrNilConfig is returned when no config is given
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilRoller is returned when no randomness source is given
	ErrNilRoller = errors.New("dice roller cannot be nil")
)

// CrossedBuckets returns the buckets a guess of rank newly entered, given
// the game's best rank before the guess. Ordered widest first.
func CrossedBuckets(previousTop, rank int) []int {
	var crossed []int
	if rank >= previousTop {
		return crossed
	}
	for _, bucket := range Buckets {
		if rank <= bucket && previousTop > bucket {
			crossed = append(crossed, bucket)
		}
	}
	return crossed
}

// Config holds configuration for the evaluator
type Config struct {
	// Threshold is the number of guesses since the last taunt before one
	// may fire; defaults to DefaultTauntThreshold
	Threshold int

	// Factor scales the cut-off; defaults to DefaultTauntFactor
	Factor float64

	// Roller provides the random draw
	Roller dice.Roller
}

// Evaluator decides when a stuck game gets taunted
type Evaluator struct {
	threshold int
	factor    float64
	roller    dice.Roller
}

// New creates an evaluator
func New(cfg *Config) (*Evaluator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultTauntThreshold
	}
	factor := cfg.Factor
	if factor <= 0 {
		factor = DefaultTauntFactor
	}

	return &Evaluator{
		threshold: threshold,
		factor:    factor,
		roller:    cfg.Roller,
	}, nil
}

// ShouldTauntInput holds the game aggregates a taunt decision needs
type ShouldTauntInput struct {
	// GuessCount is the number of distinct guesses in the game
	GuessCount int

	// TauntIndex is the guess count when the last taunt fired
	TauntIndex int

	// TopRank is the best rank guessed so far
	TopRank int
}

// Eligible reports whether a taunt may fire at all, without drawing
func (e *Evaluator) Eligible(input *ShouldTauntInput) bool {
	if input == nil {
		return false
	}
	return input.TopRank > TauntRankFloor && input.GuessCount-input.TauntIndex > e.threshold
}

// ShouldTaunt draws once and reports whether to taunt. The chance rises
// with every guess past the threshold.
func (e *Evaluator) ShouldTaunt(input *ShouldTauntInput) bool {
	if !e.Eligible(input) {
		return false
	}

	since := float64(input.GuessCount - input.TauntIndex)
	cutoff := float64(e.threshold) / (e.factor * since)

	return e.roller.Float64() > cutoff
}
