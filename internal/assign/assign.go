// Package assign implements the assignment engine: derangement generation
// for giver/receiver pairs and gift-number shuffling. It is pure and does not
// touch storage.
package assign

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand"
	"sync"
)

// A random permutation is a derangement with probability D(n)/n! -> 1/e, so
// the expected number of draws is under 3. The cap only matters if the random
// source is broken; hitting it must fail loudly instead of spinning.
const maxDraws = 1024

var (
	// ErrTooFewNames is returned for inputs of fewer than two names. No
	// derangement exists for n < 2.
	ErrTooFewNames = errors.New("at least two names required")
	// ErrNoDerangement is returned when the draw cap is exhausted.
	ErrNoDerangement = errors.New("no derangement found within draw limit")
)

// Assignment pairs a giver with the name they give a gift to.
type Assignment struct {
	Name       string
	AssignedTo string
}

// Rand is the randomness the engine consumes. *math/rand.Rand satisfies it;
// tests substitute a deterministic implementation.
type Rand interface {
	Intn(n int) int
}

// Engine produces assignments and gift numbers from an injected random
// source. One Engine is shared across requests; *math/rand.Rand is not safe
// for concurrent use, so all draws go through the mutex.
type Engine struct {
	mu  sync.Mutex
	rng Rand
}

// New returns an Engine drawing from rng.
func New(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// NewCryptoSeeded returns an Engine backed by math/rand seeded from
// crypto/rand. Wall-clock seeding alone would make assignments guessable.
func NewCryptoSeeded() (*Engine, error) {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed engine: %w", err)
	}
	return New(mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))), nil
}

// Assignments returns, for each input name in original order, the name it is
// paired to give a gift to. The result is a derangement: a bijection over the
// input names with no name assigned to itself.
//
// It rejection-samples uniform Fisher-Yates shuffles until one has no fixed
// point. The caller guarantees names are distinct; only the n < 2 case is
// re-checked here because it would loop forever.
func (e *Engine) Assignments(names []string) ([]Assignment, error) {
	if len(names) < 2 {
		return nil, ErrTooFewNames
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	for draw := 0; draw < maxDraws; draw++ {
		e.shuffle(shuffled)
		if isDerangement(names, shuffled) {
			out := make([]Assignment, len(names))
			for i, name := range names {
				out[i] = Assignment{Name: name, AssignedTo: shuffled[i]}
			}
			return out, nil
		}
	}
	return nil, ErrNoDerangement
}

// GiftNumbers returns a uniformly random permutation of 1..n. Unlike
// Assignments there is no constraint; the identity permutation is a valid
// outcome.
func (e *Engine) GiftNumbers(n int) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	for i := len(nums) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		nums[i], nums[j] = nums[j], nums[i]
	}
	return nums
}

func (e *Engine) shuffle(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func isDerangement(original, shuffled []string) bool {
	for i := range original {
		if original[i] == shuffled[i] {
			return false
		}
	}
	return true
}
