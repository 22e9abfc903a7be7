package metric

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConnectionStateOneHot(t *testing.T) {
	c := NewCollector()

	c.SetConnectionState("connected")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.connectionState.WithLabelValues("connected")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.connectionState.WithLabelValues("disconnected")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.connectionState.WithLabelValues("error")))
}

func TestCollectorObserveCommand(t *testing.T) {
	c := NewCollector()

	c.ObserveCommand(50*time.Millisecond, "ok")
	c.ObserveCommand(0, "timeout")
	c.ObserveCommand(0, "error")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("error")))
}

func TestCollectorNotificationCategories(t *testing.T) {
	c := NewCollector()

	c.IncNotification("endpoint")
	c.IncNotification("endpoint")
	c.IncNotification("cecinfo")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.notifications.WithLabelValues("endpoint")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notifications.WithLabelValues("cecinfo")))
}

func TestCollectorBreakerGauge(t *testing.T) {
	c := NewCollector()

	c.SetBreakerOpen(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.breakerOpen))

	c.SetBreakerOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.breakerOpen))
}

func TestCollectorRegistryGathers(t *testing.T) {
	c := NewCollector()
	c.IncReconnect()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "networkhd_client_reconnects_total") {
			found = true
		}
	}
	assert.True(t, found, "reconnect counter should be gathered")
}

func TestServerRejectsDoubleStart(t *testing.T) {
	s := NewServer(0, "", NewCollector())

	go func() { _ = s.Start() }()
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	// Give the first Start a moment to claim the server slot.
	time.Sleep(50 * time.Millisecond)
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
