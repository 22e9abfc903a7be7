package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// connectionStates enumerates every label value the state gauge can carry.
// Keeping the set closed lets dashboards sum the gauge to exactly 1.
var connectionStates = []string{
	"disconnected", "connecting", "connected", "error", "reconnecting",
}

// Collector holds the client's Prometheus metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	connectionState  *prometheus.GaugeVec
	commandsTotal    *prometheus.CounterVec
	commandDuration  prometheus.Histogram
	notifications    *prometheus.CounterVec
	reconnectsTotal  prometheus.Counter
	breakerOpen      prometheus.Gauge
	transportErrors  prometheus.Counter
	unsolicitedLines prometheus.Counter
}

// NewCollector creates a Collector with all client metrics registered,
// alongside the standard Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		connectionState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "connection_state",
				Help:      "Current connection state (one-hot across state labels)",
			},
			[]string{"state"},
		),

		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "commands_total",
				Help:      "Commands sent, by outcome",
			},
			[]string{"status"},
		),

		commandDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "command_duration_seconds",
				Help:      "Round-trip time from command write to first response line",
				Buckets:   prometheus.DefBuckets,
			},
		),

		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "notifications_total",
				Help:      "Unsolicited notifications received, by category",
			},
			[]string{"category"},
		),

		reconnectsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "reconnects_total",
				Help:      "Reconnection sequences started",
			},
		),

		breakerOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "circuit_breaker_open",
				Help:      "Circuit breaker status (0=closed, 1=open)",
			},
		),

		transportErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "networkhd",
				Subsystem: "transport",
				Name:      "read_errors_total",
				Help:      "Transport read errors observed by the dispatcher",
			},
		),

		unsolicitedLines: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "networkhd",
				Subsystem: "client",
				Name:      "unsolicited_lines_total",
				Help:      "Response lines received with no command outstanding",
			},
		),
	}

	c.registry.MustRegister(
		c.connectionState,
		c.commandsTotal,
		c.commandDuration,
		c.notifications,
		c.reconnectsTotal,
		c.breakerOpen,
		c.transportErrors,
		c.unsolicitedLines,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.SetConnectionState("disconnected")
	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// SetConnectionState marks the given state as current and clears the rest.
func (c *Collector) SetConnectionState(state string) {
	for _, s := range connectionStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		c.connectionState.WithLabelValues(s).Set(value)
	}
}

// ObserveCommand records one command round trip.
func (c *Collector) ObserveCommand(duration time.Duration, status string) {
	c.commandsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		c.commandDuration.Observe(duration.Seconds())
	}
}

// IncNotification counts one routed notification.
func (c *Collector) IncNotification(category string) {
	c.notifications.WithLabelValues(category).Inc()
}

// IncReconnect counts one reconnection sequence.
func (c *Collector) IncReconnect() {
	c.reconnectsTotal.Inc()
}

// SetBreakerOpen records the circuit breaker position.
func (c *Collector) SetBreakerOpen(open bool) {
	value := 0.0
	if open {
		value = 1.0
	}
	c.breakerOpen.Set(value)
}

// IncTransportError counts one dispatcher read error.
func (c *Collector) IncTransportError() {
	c.transportErrors.Inc()
}

// IncUnsolicitedLine counts one orphan response line.
func (c *Collector) IncUnsolicitedLine() {
	c.unsolicitedLines.Inc()
}
