package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/raidhall/internal/common/clock Clock

// Clock supplies wall-clock time so lobby, instance and leaderboard timestamps
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// DefaultClock implements Clock using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
