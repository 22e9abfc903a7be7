package client

import (
	"fmt"
	"log/slog"
	"time"

	nherrors "github.com/c360/networkhd/errors"
	"github.com/c360/networkhd/metric"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultCommandTimeout    = 10 * time.Second
	DefaultBreakerThreshold  = 3
	DefaultBreakerTimeout    = 30 * time.Second
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultReadBackoff       = 100 * time.Millisecond
)

// Option configures a Client during construction.
type Option func(*Client) error

// WithLogger sets the structured logger. The default logs to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return nherrors.WrapInvalid(
				fmt.Errorf("logger cannot be nil"),
				"client", "WithLogger", "provide a valid slog.Logger")
		}
		c.logger = logger
		return nil
	}
}

// WithCommandTimeout bounds how long Send waits for the first response line.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return nherrors.WrapInvalid(
				fmt.Errorf("command timeout must be positive, got %v", timeout),
				"client", "WithCommandTimeout", "use a positive duration")
		}
		c.commandTimeout = timeout
		return nil
	}
}

// WithBreakerThreshold sets how many consecutive connection failures open
// the circuit breaker.
func WithBreakerThreshold(threshold int) Option {
	return func(c *Client) error {
		if threshold <= 0 {
			return nherrors.WrapInvalid(
				fmt.Errorf("breaker threshold must be positive, got %d", threshold),
				"client", "WithBreakerThreshold", "use a positive count")
		}
		c.breakerThreshold = threshold
		return nil
	}
}

// WithBreakerTimeout sets how long the breaker stays open before a new
// connection attempt is allowed.
func WithBreakerTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return nherrors.WrapInvalid(
				fmt.Errorf("breaker timeout must be positive, got %v", timeout),
				"client", "WithBreakerTimeout", "use a positive duration")
		}
		c.breakerTimeout = timeout
		return nil
	}
}

// WithHeartbeatInterval sets how often the health probe checks the
// transport while connected.
func WithHeartbeatInterval(interval time.Duration) Option {
	return func(c *Client) error {
		if interval <= 0 {
			return nherrors.WrapInvalid(
				fmt.Errorf("heartbeat interval must be positive, got %v", interval),
				"client", "WithHeartbeatInterval", "use a positive duration")
		}
		c.heartbeatInterval = interval
		return nil
	}
}

// WithoutHeartbeat disables the periodic transport health probe.
func WithoutHeartbeat() Option {
	return func(c *Client) error {
		c.heartbeatInterval = 0
		return nil
	}
}

// WithReadBackoff sets the pause after a transient read error before the
// dispatcher retries.
func WithReadBackoff(backoff time.Duration) Option {
	return func(c *Client) error {
		if backoff <= 0 {
			return nherrors.WrapInvalid(
				fmt.Errorf("read backoff must be positive, got %v", backoff),
				"client", "WithReadBackoff", "use a positive duration")
		}
		c.readBackoff = backoff
		return nil
	}
}

// WithCollector attaches Prometheus instrumentation. Without a collector
// the client still keeps its in-process Metrics counters.
func WithCollector(collector *metric.Collector) Option {
	return func(c *Client) error {
		if collector == nil {
			return nherrors.WrapInvalid(
				fmt.Errorf("collector cannot be nil"),
				"client", "WithCollector", "provide a valid metric.Collector")
		}
		c.collector = collector
		return nil
	}
}
