package clock

import "time"

// Clocker abstracts the current time so scheduling logic stays deterministic in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the real system clock.
type TimeClocker struct{}

// New returns a TimeClocker backed by time.Now.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
