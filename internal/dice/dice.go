package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/raidhall/internal/dice Roller

// Roller is the random source behind every combat roll, spawn sample and
// leadership hand-off.
type Roller interface {
	// Between returns a value in [min, max)
	Between(min, max int) int

	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// roller is safe for use by many instance goroutines at once
type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Between returns min when the range is empty
func (r *roller) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

// Intn returns 0 for n <= 0 instead of panicking like math/rand
func (r *roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}
