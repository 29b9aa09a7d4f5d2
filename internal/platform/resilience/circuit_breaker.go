package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after a streak of consecutive failures and lets a
// bounded number of probe requests through once the open window elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state          CircuitState
	failureStreak  int
	openedAt       time.Time
	probeInFlight  int
	probeSuccesses int
	now            func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a request may proceed. In the half-open state it
// also reserves a probe slot; callers must follow up with RecordSuccess
// or RecordFailure to release it.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if !b.openWindowElapsed(b.now()) {
			return ErrCircuitOpen
		}
		b.enterProbing()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probeInFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probeInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak = 0
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.probeSuccesses++
		if b.probeSuccesses >= b.halfOpenMaxReq && b.probeInFlight == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak++
		if b.failureStreak >= b.failureThreshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		// Any failed probe re-opens the breaker for a fresh window.
		b.releaseProbe()
		b.trip()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.openWindowElapsed(b.now()) {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) openWindowElapsed(now time.Time) bool {
	return now.Sub(b.openedAt) >= b.openTimeout
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probeInFlight > 0 {
		b.probeInFlight--
	}
}

func (b *CircuitBreaker) reset() {
	b.state = CircuitStateClosed
	b.failureStreak = 0
	b.probeInFlight = 0
	b.probeSuccesses = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probeInFlight = 0
	b.probeSuccesses = 0
}

func (b *CircuitBreaker) enterProbing() {
	b.state = CircuitStateHalfOpen
	b.probeInFlight = 0
	b.probeSuccesses = 0
}
