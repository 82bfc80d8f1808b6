package celebrate

import (
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
}

// NewMockClock creates a new mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AfterFunc registers fn to fire when the mocked time passes its deadline
func (m *MockClock) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{
		clock:    m,
		deadline: m.currentTime.Add(d),
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the mocked time forward and fires due timers in
// deadline order. Callbacks run synchronously on the caller's goroutine.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	now := m.currentTime

	var due []*mockTimer
	remaining := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.deadline.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	m.timers = remaining
	m.mu.Unlock()

	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
