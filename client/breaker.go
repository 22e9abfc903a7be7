package client

import (
	"sync"
	"time"
)

// circuitBreaker trips after a run of consecutive connection failures and
// rejects further attempts until a cool-off period elapses. The open state
// clears lazily: the first IsOpen call after the timeout resets the breaker
// rather than a background timer doing it.
type circuitBreaker struct {
	mu        sync.Mutex
	threshold int
	timeout   time.Duration
	failures  int
	open      bool
	openedAt  time.Time

	// now is swapped out in tests to drive the cool-off clock.
	now func() time.Time
}

func newCircuitBreaker(threshold int, timeout time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		timeout:   timeout,
		now:       time.Now,
	}
}

// RecordFailure counts a failed connection attempt and opens the breaker
// once the consecutive-failure threshold is reached.
func (b *circuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.threshold && !b.open {
		b.open = true
		b.openedAt = b.now()
	}
}

// RecordSuccess resets the failure run after a successful connection.
func (b *circuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.open = false
}

// IsOpen reports whether the breaker is rejecting attempts, clearing it
// first if the cool-off period has elapsed.
func (b *circuitBreaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open && b.now().Sub(b.openedAt) >= b.timeout {
		b.open = false
		b.failures = 0
	}
	return b.open
}

// Failures returns the current consecutive-failure count.
func (b *circuitBreaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
