package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/jpcodeman/partygame/internal/common/clock Clock

// Clock supplies timestamps for guesses, games and tokens
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
