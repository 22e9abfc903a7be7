package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nherrors "github.com/c360/networkhd/errors"
	"github.com/c360/networkhd/protocol"
	"github.com/c360/networkhd/transport"
)

func newTestClient(t *testing.T, tr transport.Transport, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithLogger(testLogger()),
		WithCommandTimeout(500 * time.Millisecond),
		WithoutHeartbeat(),
	}
	c, err := New(tr, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func connect(t *testing.T, c *Client) {
	t.Helper()
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Disconnect() })
}

func TestNewRejectsNilTransport(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, nherrors.IsInvalid(err))
}

func TestOptionValidation(t *testing.T) {
	tr := transport.NewScript()
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero command timeout", WithCommandTimeout(0)},
		{"negative command timeout", WithCommandTimeout(-time.Second)},
		{"zero breaker threshold", WithBreakerThreshold(0)},
		{"negative breaker timeout", WithBreakerTimeout(-time.Minute)},
		{"zero heartbeat interval", WithHeartbeatInterval(0)},
		{"zero read backoff", WithReadBackoff(0)},
		{"nil logger", WithLogger(nil)},
		{"nil collector", WithCollector(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tr, tt.opt)
			require.Error(t, err)
			assert.True(t, nherrors.IsInvalid(err))
		})
	}
}

func TestConnectDisconnectLifecycle(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)

	assert.Equal(t, StateDisconnected, c.State())
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, StateConnected, c.State())
	assert.True(t, tr.IsOpen())

	require.NoError(t, c.Disconnect())
	assert.Equal(t, StateDisconnected, c.State())
	assert.False(t, tr.IsOpen())

	// Disconnecting again is a no-op.
	require.NoError(t, c.Disconnect())
}

func TestConnectWhileConnectedFails(t *testing.T) {
	c := newTestClient(t, transport.NewScript())
	connect(t, c)

	err := c.Connect(context.Background())
	require.ErrorIs(t, err, nherrors.ErrAlreadyConnected)
}

func TestConnectWhileConnectingFails(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)

	// A second caller arriving mid-attempt must not reach the transport or
	// touch the breaker.
	c.mu.Lock()
	require.NoError(t, c.transition(StateConnecting))
	c.mu.Unlock()

	err := c.Connect(context.Background())
	require.ErrorIs(t, err, nherrors.ErrAlreadyConnected)
	assert.False(t, tr.IsOpen())
	assert.Equal(t, StateConnecting, c.State())
	assert.Zero(t, c.breaker.Failures())
}

func TestSendRequiresConnection(t *testing.T) {
	c := newTestClient(t, transport.NewScript())
	_, err := c.Send(context.Background(), "config get version")
	require.ErrorIs(t, err, nherrors.ErrNotConnected)
}

func TestSendVersionQuery(t *testing.T) {
	tr := transport.NewScript()
	tr.Stage("config get version", "API version: v6.7\nSystem version: v1.0(v2.0)")
	c := newTestClient(t, tr)
	connect(t, c)

	raw, err := c.Send(context.Background(), "config get version")
	require.NoError(t, err)

	v, err := protocol.ParseVersion(raw)
	require.NoError(t, err)
	assert.Equal(t, "6.7", v.API)
	assert.Equal(t, "1.0", v.Web)
	assert.Equal(t, "2.0", v.Core)

	assert.Equal(t, []string{"config get version"}, tr.Writes())

	snap := c.Snapshot()
	assert.Equal(t, uint64(1), snap.CommandsSent)
	assert.Equal(t, uint64(0), snap.CommandsFailed)
	assert.False(t, snap.LastCommandAt.IsZero())
}

func TestSendJoinsMultiLineReply(t *testing.T) {
	tr := transport.NewScript()
	tr.Stage("matrix get", "matrix information:\nsource1 display1\nsource2 display2")
	c := newTestClient(t, tr)
	connect(t, c)

	raw, err := c.Send(context.Background(), "matrix get")
	require.NoError(t, err)
	assert.Equal(t, "matrix information:\nsource1 display1\nsource2 display2", raw)
}

func TestSendTimesOutAndRecovers(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr, WithCommandTimeout(100*time.Millisecond))
	connect(t, c)

	_, err := c.Send(context.Background(), "matrix get")
	require.ErrorIs(t, err, nherrors.ErrCommandTimeout)
	assert.Contains(t, err.Error(), "matrix get")

	// The timed-out entry is gone; the next command correlates cleanly.
	tr.Stage("config get version", "API version: v6.7\nSystem version: v1.0(v2.0)")
	raw, err := c.Send(context.Background(), "config get version")
	require.NoError(t, err)
	assert.Contains(t, raw, "API version")

	snap := c.Snapshot()
	assert.Equal(t, uint64(1), snap.CommandsSent)
	assert.Equal(t, uint64(1), snap.CommandsFailed)
}

func TestSendHonorsContextCancellation(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr, WithCommandTimeout(5*time.Second))
	connect(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Send(ctx, "matrix get")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConcurrentSendsAreSerialized(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)
	connect(t, c)

	const workers = 4
	for i := 0; i < workers; i++ {
		tr.Stage(fmt.Sprintf("matrix get %d", i), fmt.Sprintf("matrix information:\nsource%d display%d", i, i))
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	replies := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			replies[i], errs[i] = c.Send(context.Background(), fmt.Sprintf("matrix get %d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Contains(t, replies[i], fmt.Sprintf("source%d display%d", i, i),
			"each caller must receive its own reply")
	}
	assert.Equal(t, uint64(workers), c.Snapshot().CommandsSent)
}

func TestNotificationRoutedByCategory(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)

	endpointEvents := make(chan protocol.Notification, 1)
	cecCalls := make(chan protocol.Notification, 1)
	c.Subscribe(protocol.CategoryEndpoint, func(n protocol.Notification) { endpointEvents <- n })
	c.Subscribe(protocol.CategoryCEC, func(n protocol.Notification) { cecCalls <- n })

	connect(t, c)
	tr.Inject("notify endpoint + source1")

	select {
	case n := <-endpointEvents:
		ev, ok := n.(protocol.EndpointStatusEvent)
		require.True(t, ok)
		assert.Equal(t, "source1", ev.Device)
		assert.True(t, ev.Online)
	case <-time.After(time.Second):
		t.Fatal("endpoint notification never arrived")
	}

	select {
	case <-cecCalls:
		t.Fatal("cecinfo handler must not see endpoint notifications")
	default:
	}
	assert.Equal(t, uint64(1), c.Snapshot().NotificationsReceived)
}

func TestZeroLengthSerialNotification(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)

	events := make(chan protocol.Notification, 1)
	c.Subscribe(protocol.CategorySerial, func(n protocol.Notification) { events <- n })

	connect(t, c)
	tr.Inject("notify serialinfo display1 hex 0:")

	select {
	case n := <-events:
		ev, ok := n.(protocol.SerialDataEvent)
		require.True(t, ok)
		assert.Equal(t, "display1", ev.Device)
		assert.Equal(t, "hex", ev.Format)
		assert.Equal(t, 0, ev.Length)
		assert.Empty(t, ev.Data)
	case <-time.After(time.Second):
		t.Fatal("serial notification never arrived")
	}
}

func TestNotificationDuringPendingCommandBypassesCorrelator(t *testing.T) {
	tr := transport.NewScript()
	tr.Stage("matrix get", "matrix information:\nsource1 display1")
	c := newTestClient(t, tr)

	events := make(chan protocol.Notification, 1)
	c.Subscribe(protocol.CategoryEndpoint, func(n protocol.Notification) { events <- n })

	connect(t, c)
	tr.Inject("notify endpoint - display2")

	raw, err := c.Send(context.Background(), "matrix get")
	require.NoError(t, err)
	assert.NotContains(t, raw, "notify", "notification lines never leak into command responses")

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("notification was swallowed by the correlator")
	}
}

func TestEmptyLinesAreIgnored(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)
	connect(t, c)

	tr.Inject("")
	tr.Inject("   ")
	tr.Inject("orphan line")

	require.Eventually(t, func() bool {
		return c.Snapshot().UnsolicitedLines == 1
	}, time.Second, 10*time.Millisecond, "only the orphan line should register")
}

func TestBreakerOpensAndFailsFast(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr,
		WithBreakerThreshold(3),
		WithBreakerTimeout(100*time.Millisecond))

	for i := 0; i < 3; i++ {
		tr.FailNextOpen(errors.New("link refused"))
		err := c.Connect(context.Background())
		require.ErrorIs(t, err, nherrors.ErrConnectionFailed)
	}

	// Fourth attempt is rejected before the transport is touched.
	err := c.Connect(context.Background())
	require.ErrorIs(t, err, nherrors.ErrCircuitOpen)
	assert.Contains(t, err.Error(), "3 consecutive failures")

	// After the cool-off the breaker clears and the attempt goes through.
	time.Sleep(120 * time.Millisecond)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Disconnect() })
	assert.Equal(t, StateConnected, c.State())
}

func TestLinkDeathMovesClientToError(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)
	connect(t, c)

	tr.Kill()

	require.Eventually(t, func() bool {
		return c.State() == StateError
	}, time.Second, 10*time.Millisecond)

	_, err := c.Send(context.Background(), "matrix get")
	require.ErrorIs(t, err, nherrors.ErrNotConnected)
}

func TestReconnectAfterLinkDeath(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)
	connect(t, c)

	tr.Kill()
	require.Eventually(t, func() bool {
		return c.State() == StateError
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Reconnect(context.Background(), 3, 10*time.Millisecond))
	assert.Equal(t, StateConnected, c.State())

	tr.Stage("config get version", "API version: v6.7\nSystem version: v1.0(v2.0)")
	raw, err := c.Send(context.Background(), "config get version")
	require.NoError(t, err)
	assert.Contains(t, raw, "API version")
}

func TestReconnectWhileConnectedReplacesSession(t *testing.T) {
	tr := transport.NewScript()
	c := newTestClient(t, tr)
	connect(t, c)

	require.NoError(t, c.Reconnect(context.Background(), 1, 10*time.Millisecond))
	assert.Equal(t, StateConnected, c.State())
}

// deadOpenTransport refuses every Open, for reconnection-exhaustion tests.
type deadOpenTransport struct {
	*transport.Script
	err error
}

func (d *deadOpenTransport) Open(context.Context) error { return d.err }

func TestReconnectExhaustsAttempts(t *testing.T) {
	tr := &deadOpenTransport{Script: transport.NewScript(), err: errors.New("host unreachable")}
	c := newTestClient(t, tr, WithBreakerThreshold(10))

	err := c.Reconnect(context.Background(), 2, 10*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, nherrors.ErrConnectionFailed)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, StateError, c.State())
}

func TestReconnectStopsWhenBreakerOpens(t *testing.T) {
	tr := &deadOpenTransport{Script: transport.NewScript(), err: errors.New("host unreachable")}
	c := newTestClient(t, tr,
		WithBreakerThreshold(2),
		WithBreakerTimeout(time.Minute))

	err := c.Reconnect(context.Background(), 10, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, nherrors.ErrCircuitOpen,
		"an open breaker must stop the retry loop, not burn remaining attempts")
}

// stuckTransport reads forever and lets tests flip liveness out from under
// the client, so only the heartbeat can notice the dead link.
type stuckTransport struct {
	mu      sync.Mutex
	open    bool
	alive   bool
	unblock chan struct{}
}

func (s *stuckTransport) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.alive = true
	s.unblock = make(chan struct{})
	return nil
}

func (s *stuckTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		s.open = false
		close(s.unblock)
	}
	return nil
}

func (s *stuckTransport) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open && s.alive
}

func (s *stuckTransport) setAlive(alive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = alive
}

func (s *stuckTransport) Write(p []byte) (int, error) { return len(p), nil }

func (s *stuckTransport) Read([]byte) (int, error) {
	s.mu.Lock()
	ch := s.unblock
	s.mu.Unlock()
	<-ch
	return 0, io.EOF
}

func TestHeartbeatDetectsSilentLinkDeath(t *testing.T) {
	tr := &stuckTransport{}
	c, err := New(tr,
		WithLogger(testLogger()),
		WithHeartbeatInterval(20*time.Millisecond))
	require.NoError(t, err)
	connect(t, c)

	tr.setAlive(false)

	require.Eventually(t, func() bool {
		return c.State() == StateError
	}, time.Second, 10*time.Millisecond)
}
