package order

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
)

// NumberPattern matches a well-formed order number
var NumberPattern = regexp.MustCompile(`^ORD-\d{6}$`)

// NumberGenerator produces human-readable order numbers
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// RandomNumberGenerator yields "ORD-" followed by a random value in
// [100000, 999999]. Uniqueness is not guaranteed; callers retry on a
// collision reported by the store.
type RandomNumberGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomNumberGenerator creates a generator seeded from the runtime
func NewRandomNumberGenerator() *RandomNumberGenerator {
	return &RandomNumberGenerator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeededNumberGenerator creates a deterministic generator
func NewSeededNumberGenerator(seed1, seed2 uint64) *RandomNumberGenerator {
	return &RandomNumberGenerator{
		rng: rand.New(rand.NewPCG(seed1, seed2)),
	}
}

// Next returns a new order number
func (g *RandomNumberGenerator) Next(_ context.Context) (string, error) {
	g.mu.Lock()
	n := 100000 + g.rng.IntN(900000)
	g.mu.Unlock()
	return fmt.Sprintf("ORD-%06d", n), nil
}

var _ NumberGenerator = (*RandomNumberGenerator)(nil)
