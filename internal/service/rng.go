package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource supplies uniform integers in [0, n). The association heuristic,
// progress fallback and seeder draw from it so tests can pin their output.
type RandomSource interface {
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine-safe PCG source seeded with seed
func NewRandomSource(seed uint64) RandomSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRandomSource returns a source seeded from the clock
func NewTimeSeededRandomSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
