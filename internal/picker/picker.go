package picker

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrEmptyWordList is returned when the picker is built without candidates
	ErrEmptyWordList = errors.New("candidate word list cannot be empty")

	// ErrWordListTooLarge is returned when the list cannot be indexed by 32-bit draws
	ErrWordListTooLarge = errors.New("candidate word list exceeds 2^32-1 entries")
)

// Picker deterministically maps a (seed, index) pair to a word of the
// candidate list. The mapping reproduces
//
//	random.Random(seed).sample(words, len(words))[index % len(words)]
//
// from CPython, so puzzles stay identical to the ones already published.
type Picker struct {
	words []string
}

// New creates a picker over the given candidate list. The list order is
// significant and must not change once puzzles have been published.
func New(words []string) (*Picker, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if uint64(len(words)) > math.MaxUint32 {
		return nil, ErrWordListTooLarge
	}

	return &Picker{
		words: words,
	}, nil
}

// Size returns the number of candidate words
func (p *Picker) Size() int {
	return len(p.words)
}

// Pick returns the secret for the given seed and puzzle index. The index
// wraps around the size of the candidate list.
func (p *Picker) Pick(seed string, index int) string {
	return p.words[p.convertIndex(seed, index)]
}

func (p *Picker) convertIndex(seed string, index int) uint32 {
	total := uint32(len(p.words))

	idx := index % int(total)
	if idx < 0 {
		idx += int(total)
	}

	rng := newMT19937(seedKey(seed))

	pool := make([]uint32, total)
	for i := range pool {
		pool[i] = uint32(i)
	}

	for i := uint32(0); i < uint32(idx); i++ {
		j := randBelow(rng, total-i)
		if j != total-i-1 {
			pool[j] = pool[total-i-1]
		}
	}

	return pool[randBelow(rng, total-uint32(idx))] % total
}

// seedKey converts a string seed into the init_by_array key: the seed bytes
// followed by their SHA-512 digest, read as one big-endian integer and split
// into little-endian 32-bit words.
func seedKey(seed string) []uint32 {
	digest := sha512.Sum512([]byte(seed))

	raw := make([]byte, 0, len(seed)+len(digest)+3)
	raw = append(raw, seed...)
	raw = append(raw, digest[:]...)

	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}
	if rem := len(raw) % 4; rem != 0 {
		raw = append(raw, make([]byte, 4-rem)...)
	}

	key := make([]uint32, len(raw)/4)
	for i := range key {
		key[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}

	// leading zero bytes of the integer carry no bits
	for len(key) > 1 && key[len(key)-1] == 0 {
		key = key[:len(key)-1]
	}

	return key
}

// randBelow draws a uniform value in [0, n) by rejection sampling on the
// top bit-length(n) bits of each output.
func randBelow(rng *mt19937, n uint32) uint32 {
	if n == 0 {
		return 0
	}

	shift := 32 - bits.Len32(n)
	r := rng.Uint32() >> shift
	for r >= n {
		r = rng.Uint32() >> shift
	}

	return r
}
