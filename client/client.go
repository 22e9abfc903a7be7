package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	nherrors "github.com/c360/networkhd/errors"
	"github.com/c360/networkhd/metric"
	"github.com/c360/networkhd/pkg/retry"
	"github.com/c360/networkhd/transport"
)

// responseLinger is how long Send keeps collecting continuation lines after
// the first response line. Multi-line replies (device tables, JSON blocks)
// arrive as a burst, so a short quiet period marks the end of the response.
const responseLinger = 50 * time.Millisecond

// readBufferSize sizes the dispatcher's transport read buffer.
const readBufferSize = 4096

// Client drives one NetworkHD unit over a byte-stream transport.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
	collector *metric.Collector

	commandTimeout    time.Duration
	breakerThreshold  int
	breakerTimeout    time.Duration
	heartbeatInterval time.Duration
	readBackoff       time.Duration

	breaker *circuitBreaker
	pending *correlator
	router  *router

	// cmdMu serializes Send callers; the protocol supports one command in
	// flight.
	cmdMu sync.Mutex

	mu             sync.Mutex
	state          ConnectionState
	cancel         context.CancelFunc
	dispatcherDone chan struct{}
	heartbeatDone  chan struct{}

	commandsSent    atomic.Uint64
	commandsFailed  atomic.Uint64
	notificationsIn atomic.Uint64
	unsolicitedIn   atomic.Uint64
	lastCommandMu   sync.Mutex
	lastCommandTime time.Time
}

// Metrics is a point-in-time snapshot of the client's counters.
type Metrics struct {
	State                 ConnectionState
	CommandsSent          uint64
	CommandsFailed        uint64
	NotificationsReceived uint64
	UnsolicitedLines      uint64
	LastCommandAt         time.Time
}

// New creates a Client over the given transport. Options override the
// defaults; any invalid option aborts construction.
func New(tr transport.Transport, opts ...Option) (*Client, error) {
	if tr == nil {
		return nil, nherrors.WrapInvalid(
			fmt.Errorf("transport cannot be nil"),
			"client", "New", "provide a transport.Transport")
	}

	c := &Client{
		transport:         tr,
		logger:            slog.New(slog.NewTextHandler(os.Stderr, nil)),
		commandTimeout:    DefaultCommandTimeout,
		breakerThreshold:  DefaultBreakerThreshold,
		breakerTimeout:    DefaultBreakerTimeout,
		heartbeatInterval: DefaultHeartbeatInterval,
		readBackoff:       DefaultReadBackoff,
		state:             StateDisconnected,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.breaker = newCircuitBreaker(c.breakerThreshold, c.breakerTimeout)
	c.pending = newCorrelator(c.logger)
	c.router = newRouter(c.logger)
	return c, nil
}

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the client's counters at this instant.
func (c *Client) Snapshot() Metrics {
	c.lastCommandMu.Lock()
	last := c.lastCommandTime
	c.lastCommandMu.Unlock()
	return Metrics{
		State:                 c.State(),
		CommandsSent:          c.commandsSent.Load(),
		CommandsFailed:        c.commandsFailed.Load(),
		NotificationsReceived: c.notificationsIn.Load(),
		UnsolicitedLines:      c.unsolicitedIn.Load(),
		LastCommandAt:         last,
	}
}

// Subscribe registers a handler for one notification category and returns
// the token needed to cancel it. Categories are the protocol.Category*
// constants.
func (c *Client) Subscribe(category string, handler NotificationHandler) Subscription {
	return c.router.register(category, handler)
}

// Unsubscribe cancels a subscription. Cancelling twice logs a warning.
func (c *Client) Unsubscribe(sub Subscription) {
	c.router.unregister(sub)
}

// Connect opens the transport and starts the dispatcher. With the circuit
// breaker open it fails fast without touching the transport.
func (c *Client) Connect(ctx context.Context) error {
	if c.breaker.IsOpen() {
		if c.collector != nil {
			c.collector.SetBreakerOpen(true)
		}
		return fmt.Errorf("connect rejected after %d consecutive failures: %w",
			c.breaker.Failures(), nherrors.ErrCircuitOpen)
	}
	if c.collector != nil {
		c.collector.SetBreakerOpen(false)
	}

	c.mu.Lock()
	switch c.state {
	case StateConnected:
		c.mu.Unlock()
		return nherrors.ErrAlreadyConnected
	case StateConnecting:
		// Another goroutine owns the attempt; letting a second one through
		// would open the transport twice and poison the breaker.
		c.mu.Unlock()
		return fmt.Errorf("connection attempt already in progress: %w", nherrors.ErrAlreadyConnected)
	}
	if err := c.transition(StateConnecting); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	if err := c.transport.Open(ctx); err != nil {
		c.breaker.RecordFailure()
		if c.collector != nil {
			c.collector.SetBreakerOpen(c.breaker.IsOpen())
		}
		c.mu.Lock()
		_ = c.transition(StateError)
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", nherrors.ErrConnectionFailed, err)
	}
	c.breaker.RecordSuccess()

	runCtx, cancel := context.WithCancel(context.Background())
	dispatcherDone := make(chan struct{})
	go c.dispatch(runCtx, dispatcherDone)

	var heartbeatDone chan struct{}
	if c.heartbeatInterval > 0 {
		heartbeatDone = make(chan struct{})
		go c.heartbeat(runCtx, heartbeatDone)
	}

	c.mu.Lock()
	c.cancel = cancel
	c.dispatcherDone = dispatcherDone
	c.heartbeatDone = heartbeatDone
	err := c.transition(StateConnected)
	c.mu.Unlock()
	return err
}

// Disconnect stops the dispatcher, closes the transport and returns the
// client to StateDisconnected. Disconnecting an already disconnected client
// is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	err := c.teardown()

	c.mu.Lock()
	terr := c.transition(StateDisconnected)
	c.mu.Unlock()
	if err != nil && !errors.Is(err, nherrors.ErrNotConnected) {
		return nherrors.WrapTransient(err, "client", "Disconnect", "closing transport")
	}
	return terr
}

// teardown cancels the goroutines, closes the transport to unblock the
// dispatcher's outstanding Read, and waits for both to exit.
func (c *Client) teardown() error {
	c.mu.Lock()
	cancel := c.cancel
	dispatcherDone := c.dispatcherDone
	heartbeatDone := c.heartbeatDone
	c.cancel = nil
	c.dispatcherDone = nil
	c.heartbeatDone = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	err := c.transport.Close()
	if dispatcherDone != nil {
		<-dispatcherDone
	}
	if heartbeatDone != nil {
		<-heartbeatDone
	}
	return err
}

// Reconnect tears the session down and retries Connect up to maxAttempts
// times with a fixed delay between attempts. It is a no-op when a connection
// attempt is already in progress.
func (c *Client) Reconnect(ctx context.Context, maxAttempts int, delay time.Duration) error {
	c.mu.Lock()
	if c.state == StateConnecting {
		c.mu.Unlock()
		c.logger.Debug("reconnect skipped, connection attempt already in progress")
		return nil
	}
	if err := c.transition(StateReconnecting); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	if c.collector != nil {
		c.collector.IncReconnect()
	}
	_ = c.teardown()

	err := retry.Do(ctx, retry.Fixed(maxAttempts, delay), func() error {
		connErr := c.Connect(ctx)
		if errors.Is(connErr, nherrors.ErrCircuitOpen) {
			return retry.NonRetryable(connErr)
		}
		return connErr
	})
	if err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	return nil
}

// Send writes a command line and returns the device's reply, with multi-line
// replies joined by newlines. The reply is raw; callers feed it to the
// protocol package for decoding.
func (c *Client) Send(ctx context.Context, command string) (string, error) {
	if c.State() != StateConnected {
		return "", fmt.Errorf("cannot send %q: %w", command, nherrors.ErrNotConnected)
	}

	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	p := c.pending.register()
	defer c.pending.remove(p)

	start := time.Now()
	if _, err := c.transport.Write([]byte(command + "\r\n")); err != nil {
		c.commandsFailed.Add(1)
		if c.collector != nil {
			c.collector.ObserveCommand(0, "error")
		}
		return "", nherrors.WrapTransient(err, "client", "Send", "writing command to transport")
	}

	timer := time.NewTimer(c.commandTimeout)
	defer timer.Stop()

	var first string
	select {
	case first = <-p.lines:
	case <-ctx.Done():
		c.commandsFailed.Add(1)
		if c.collector != nil {
			c.collector.ObserveCommand(0, "error")
		}
		return "", fmt.Errorf("command %q: %w", command, ctx.Err())
	case <-timer.C:
		c.commandsFailed.Add(1)
		if c.collector != nil {
			c.collector.ObserveCommand(0, "timeout")
		}
		return "", fmt.Errorf("command %q: %w", command, nherrors.ErrCommandTimeout)
	}

	lines := []string{first}
	lines = append(lines, c.drainContinuation(ctx, p)...)

	elapsed := time.Since(start)
	c.commandsSent.Add(1)
	c.lastCommandMu.Lock()
	c.lastCommandTime = time.Now()
	c.lastCommandMu.Unlock()
	if c.collector != nil {
		c.collector.ObserveCommand(elapsed, "ok")
	}
	return strings.Join(lines, "\n"), nil
}

// drainContinuation collects the rest of a burst reply until the line
// stream goes quiet for responseLinger.
func (c *Client) drainContinuation(ctx context.Context, p *pendingCommand) []string {
	var lines []string
	for {
		quiet := time.NewTimer(responseLinger)
		select {
		case line := <-p.lines:
			quiet.Stop()
			lines = append(lines, line)
		case <-ctx.Done():
			quiet.Stop()
			return lines
		case <-quiet.C:
			return lines
		}
	}
}

// dispatch is the read loop. It splits the transport's byte stream into
// lines and routes each one: notifications to the router, everything else
// to the oldest pending command.
func (c *Client) dispatch(ctx context.Context, done chan struct{}) {
	defer close(done)

	buf := make([]byte, readBufferSize)
	var acc []byte
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := c.transport.Read(buf)
		if n > 0 {
			acc = append(acc, buf[:n]...)
			acc = c.consumeLines(acc)
		}
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if c.collector != nil {
			c.collector.IncTransportError()
		}
		if errors.Is(err, io.EOF) || !c.transport.IsOpen() {
			c.logger.Error("transport read failed, link down", "error", err)
			c.mu.Lock()
			if c.state == StateConnected {
				_ = c.transition(StateError)
			}
			c.mu.Unlock()
			return
		}
		c.logger.Warn("transient transport read error", "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.readBackoff):
		}
	}
}

// consumeLines processes every complete line in acc and returns the
// unterminated remainder.
func (c *Client) consumeLines(acc []byte) []byte {
	for {
		idx := bytes.IndexByte(acc, '\n')
		if idx < 0 {
			return acc
		}
		line := strings.TrimSpace(strings.TrimRight(string(acc[:idx]), "\r"))
		acc = acc[idx+1:]
		if line == "" {
			continue
		}
		c.handleLine(line)
	}
}

func (c *Client) handleLine(line string) {
	if strings.HasPrefix(line, "notify ") {
		category, err := c.router.dispatch(line)
		if err != nil {
			c.logger.Warn("undecodable notification", "line", line, "error", err)
			return
		}
		c.notificationsIn.Add(1)
		if c.collector != nil {
			c.collector.IncNotification(category)
		}
		return
	}
	if !c.pending.deliver(line) {
		c.unsolicitedIn.Add(1)
		if c.collector != nil {
			c.collector.IncUnsolicitedLine()
		}
		c.logger.Warn("unsolicited response line", "line", line)
	}
}

// heartbeat probes transport liveness while connected and marks the client
// errored when the link goes dead between commands.
func (c *Client) heartbeat(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.transport.IsOpen() {
				continue
			}
			c.logger.Error("heartbeat found transport closed")
			c.mu.Lock()
			if c.state == StateConnected {
				_ = c.transition(StateError)
			}
			c.mu.Unlock()
			return
		}
	}
}
