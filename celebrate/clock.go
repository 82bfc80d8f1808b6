package celebrate

import "time"

// Clock provides the time source and timer scheduling for the effect engine.
// Injected so tests can drive animation lifecycles deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending scheduled call that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the timer; returns false if it already fired or was stopped
	Stop() bool
}

// SystemClock provides the real system time with monotonic clock readings
type SystemClock struct{}

// NewSystemClock creates a new monotonic clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on its own goroutine after d elapses
func (c *SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return &systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s *systemTimer) Stop() bool {
	return s.t.Stop()
}
