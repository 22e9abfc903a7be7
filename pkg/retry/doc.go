// Package retry provides bounded retry with backoff for transient failures.
//
// # Overview
//
// The connection engine uses this package to drive reconnection: a bounded
// number of attempts with a delay between them, optionally growing
// exponentially. The device protocol gives no feedback channel during an
// outage, so retry timing is the only recovery lever the client has.
//
// # Configuration Presets
//
//   - Fixed(attempts, delay): bounded attempts with a constant delay, the
//     reconnection policy the client uses by default
//   - DefaultConfig(): 3 attempts, 100ms-5s exponential backoff
//
// # Usage
//
//	err := retry.Do(ctx, retry.Fixed(5, 2*time.Second), func() error {
//	    return client.Connect(ctx)
//	})
//
// Wrap an error with NonRetryable to abort the loop immediately; the circuit
// breaker uses this to stop reconnection while it is open.
//
// # Context Cancellation
//
// All retry operations respect context cancellation, both during operation
// execution and during the backoff delay.
package retry
