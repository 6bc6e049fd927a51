package shared

import (
	"sync"
	"time"
)

// Tick is the host's monotonic progress counter (block height analogue)
type Tick uint64

// Since returns the number of ticks elapsed from start to t.
// A start in the future yields zero instead of wrapping around.
func (t Tick) Since(start Tick) uint64 {
	if t <= start {
		return 0
	}
	return uint64(t - start)
}

// TickSource supplies the current tick. Implementations must be monotonically
// non-decreasing.
type TickSource interface {
	CurrentTick() Tick
}

// Clock is an abstraction for wall-clock time, allowing time to be mocked in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// ClockTickSource derives ticks from wall-clock time elapsed since a genesis instant.
// Times before genesis map to tick 0.
type ClockTickSource struct {
	clock    Clock
	genesis  time.Time
	interval time.Duration
}

// NewClockTickSource creates a tick source counting one tick per interval since genesis.
// If clock is nil, uses RealClock.
func NewClockTickSource(clock Clock, genesis time.Time, interval time.Duration) *ClockTickSource {
	if clock == nil {
		clock = NewRealClock()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &ClockTickSource{clock: clock, genesis: genesis, interval: interval}
}

// CurrentTick returns the number of whole intervals since genesis
func (s *ClockTickSource) CurrentTick() Tick {
	elapsed := s.clock.Now().Sub(s.genesis)
	if elapsed <= 0 {
		return 0
	}
	return Tick(elapsed / s.interval)
}

// MockTickSource implements TickSource with a controllable tick for testing
type MockTickSource struct {
	mu   sync.Mutex
	tick Tick
}

// NewMockTickSource creates a MockTickSource starting at the given tick
func NewMockTickSource(start Tick) *MockTickSource {
	return &MockTickSource{tick: start}
}

// CurrentTick returns the mock's current tick
func (m *MockTickSource) CurrentTick() Tick {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick
}

// Advance moves the mock tick forward by n
func (m *MockTickSource) Advance(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick += Tick(n)
}

// Set moves the mock to a specific tick. Moving backwards is ignored.
func (m *MockTickSource) Set(t Tick) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t > m.tick {
		m.tick = t
	}
}
