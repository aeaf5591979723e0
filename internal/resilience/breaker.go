// Package resilience guards calls to optional backing services.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// State of a circuit breaker
type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	}
	return "unknown"
}

// ErrOpen is returned by Call while the breaker rejects calls
var ErrOpen = errors.New("circuit breaker is open")

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	FailureThreshold int           `json:"failure_threshold"` // consecutive failures before opening
	RecoveryTimeout  time.Duration `json:"recovery_timeout"`  // time spent open before a trial call
	SuccessThreshold int           `json:"success_threshold"` // trial successes needed to close again
}

// DefaultBreakerConfig returns the defaults applied to zero fields
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 3,
	}
}

// Breaker short-circuits calls to a dependency after repeated failures
type Breaker struct {
	config BreakerConfig
	now    func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	nextAttempt time.Time
}

// NewBreaker creates a closed breaker, filling zero config fields with defaults
func NewBreaker(config BreakerConfig) *Breaker {
	return newBreaker(config, time.Now)
}

func newBreaker(config BreakerConfig, now func() time.Time) *Breaker {
	defaults := DefaultBreakerConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = defaults.RecoveryTimeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaults.SuccessThreshold
	}
	return &Breaker{config: config, now: now}
}

// Call runs fn unless the breaker is open. fn's error is returned as is.
func (b *Breaker) Call(fn func() error) error {
	if !b.admit() {
		return ErrOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
	} else {
		b.onSuccess()
	}
	return err
}

func (b *Breaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateOpen {
		return true
	}
	if b.now().Before(b.nextAttempt) {
		return false
	}
	b.state = StateHalfOpen
	b.successes = 0
	return true
}

func (b *Breaker) onFailure() {
	b.successes = 0
	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.config.FailureThreshold {
		b.state = StateOpen
		b.nextAttempt = b.now().Add(b.config.RecoveryTimeout)
	}
}

func (b *Breaker) onSuccess() {
	b.failures = 0
	if b.state != StateHalfOpen {
		return
	}
	b.successes++
	if b.successes >= b.config.SuccessThreshold {
		b.state = StateClosed
	}
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears its counters
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

// Stats reports state and failure count for health output
func (b *Breaker) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]interface{}{
		"state":    b.state.String(),
		"failures": b.failures,
	}
}
