package stopwatch

import (
	"sync"
	"time"
)

// State describes the lifecycle of a work session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

// String returns a user-facing label for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Working..."
	case StatePaused:
		return "Paused..."
	default:
		return "Ready"
	}
}

// Clock supplies the current instant. Injected so tests can control
// time and so no component reaches for ambient wall-clock state.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Reading is the read model exposed to the presentation layer after
// every sample.
type Reading struct {
	InitTime  time.Time
	FinalTime time.Time
	Elapsed   time.Duration
	State     State
}

// Started reports whether a session has been started (and not yet
// discarded by Stop).
func (r Reading) Started() bool { return !r.InitTime.IsZero() }

// Stopwatch tracks a single open work session. At most one sampling
// timer is live per instance; Pause and Stop cancel it before
// returning, so a tick can never land after the state it belonged to.
type Stopwatch struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration

	state     State
	initTime  time.Time
	finalTime time.Time
	elapsed   time.Duration

	ticker *time.Ticker
	stop   chan struct{}
}

// DefaultInterval matches the refresh rate of the session display.
const DefaultInterval = 10 * time.Millisecond

// New creates an idle Stopwatch. A nil clock defaults to the system
// clock; a non-positive interval defaults to DefaultInterval.
func New(clock Clock, interval time.Duration) *Stopwatch {
	if clock == nil {
		clock = SystemClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Stopwatch{clock: clock, interval: interval}
}

// Start begins a new session from idle, or resumes sampling from
// paused without resetting the start instant. Calling Start while
// already running is a no-op.
func (sw *Stopwatch) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	switch sw.state {
	case StateRunning:
		return
	case StateIdle:
		now := sw.clock.Now()
		sw.initTime = now
		sw.finalTime = now
		sw.elapsed = 0
	case StatePaused:
		// initTime is preserved: elapsed time stays continuous
		// across pauses (now - initTime at every sample).
	}
	sw.state = StateRunning
	sw.startTickerLocked()
}

// Pause freezes the current reading and cancels sampling. Only valid
// from running; otherwise a no-op.
func (sw *Stopwatch) Pause() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.state != StateRunning {
		return
	}
	sw.stopTickerLocked()
	sw.state = StatePaused
}

// Stop cancels sampling and resets the session. Callers must capture
// the last Reading before calling Stop if it is to be persisted. Safe
// to call from any state, including twice in a row.
func (sw *Stopwatch) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.stopTickerLocked()
	sw.state = StateIdle
	sw.initTime = time.Time{}
	sw.finalTime = time.Time{}
	sw.elapsed = 0
}

// Reading returns a snapshot of the current session.
func (sw *Stopwatch) Reading() Reading {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return Reading{
		InitTime:  sw.initTime,
		FinalTime: sw.finalTime,
		Elapsed:   sw.elapsed,
		State:     sw.state,
	}
}

// sample recomputes the reading from the clock. Guarded on state so a
// tick that raced with Pause or Stop leaves the frozen reading intact.
func (sw *Stopwatch) sample() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.state != StateRunning {
		return
	}
	sw.finalTime = sw.clock.Now()
	sw.elapsed = sw.finalTime.Sub(sw.initTime)
}

func (sw *Stopwatch) startTickerLocked() {
	if sw.ticker != nil {
		return
	}
	sw.ticker = time.NewTicker(sw.interval)
	sw.stop = make(chan struct{})
	go sw.run(sw.ticker, sw.stop)
}

func (sw *Stopwatch) stopTickerLocked() {
	if sw.ticker == nil {
		return
	}
	sw.ticker.Stop()
	close(sw.stop)
	sw.ticker = nil
	sw.stop = nil
}

func (sw *Stopwatch) run(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			sw.sample()
		case <-stop:
			return
		}
	}
}
