package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/c360/networkhd/client"
	nherrors "github.com/c360/networkhd/errors"
	"github.com/c360/networkhd/protocol"
)

// DefaultSubjectPrefix roots every published subject.
const DefaultSubjectPrefix = "networkhd.events"

// DefaultPublishTimeout bounds each publish call.
const DefaultPublishTimeout = 5 * time.Second

// Publisher is the outbound half of a message bus connection. A *nats.Conn
// satisfies it through NewNATSPublisher.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// categories lists every notification category the bridge forwards.
var categories = []string{
	protocol.CategoryEndpoint,
	protocol.CategoryCEC,
	protocol.CategoryInfrared,
	protocol.CategorySerial,
	protocol.CategoryVideo,
	protocol.CategorySink,
}

// envelope is the published JSON document.
type envelope struct {
	Category   string                `json:"category"`
	Device     string                `json:"device"`
	ReceivedAt time.Time             `json:"receivedAt"`
	Event      protocol.Notification `json:"event"`
}

// Bridge forwards a client's notifications to a Publisher.
type Bridge struct {
	client  *client.Client
	pub     Publisher
	logger  *slog.Logger
	prefix  string
	timeout time.Duration

	mu   sync.Mutex
	subs []client.Subscription
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithSubjectPrefix overrides the subject root.
func WithSubjectPrefix(prefix string) Option {
	return func(b *Bridge) { b.prefix = strings.Trim(prefix, ".") }
}

// WithPublishTimeout bounds each publish call.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(b *Bridge) { b.timeout = timeout }
}

// New creates a Bridge. Start must be called before events flow.
func New(c *client.Client, pub Publisher, opts ...Option) *Bridge {
	b := &Bridge{
		client:  c,
		pub:     pub,
		logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
		prefix:  DefaultSubjectPrefix,
		timeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start subscribes the bridge to every notification category. Starting an
// already started bridge returns an error.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) > 0 {
		return nherrors.WrapInvalid(
			fmt.Errorf("bridge already started"),
			"Bridge", "Start", "stop the bridge before starting it again")
	}
	for _, category := range categories {
		b.subs = append(b.subs, b.client.Subscribe(category, b.forward))
	}
	return nil
}

// Stop cancels every subscription. Stopping a stopped bridge is a no-op.
func (b *Bridge) Stop() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	for _, sub := range subs {
		b.client.Unsubscribe(sub)
	}
}

// forward runs on the client's dispatcher goroutine; it must stay fast and
// must never panic outward.
func (b *Bridge) forward(event protocol.Notification) {
	subject := b.subjectFor(event)
	data, err := json.Marshal(envelope{
		Category:   event.Category(),
		Device:     eventDevice(event),
		ReceivedAt: time.Now().UTC(),
		Event:      event,
	})
	if err != nil {
		b.logger.Error("dropping unmarshalable notification",
			"category", event.Category(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	if err := b.pub.Publish(ctx, subject, data); err != nil {
		b.logger.Error("notification publish failed",
			"subject", subject, "error", err)
	}
}

func (b *Bridge) subjectFor(event protocol.Notification) string {
	return b.prefix + "." + event.Category() + "." + subjectToken(eventDevice(event))
}

// eventDevice names the device an event concerns, for subject routing.
func eventDevice(event protocol.Notification) string {
	switch ev := event.(type) {
	case protocol.EndpointStatusEvent:
		return ev.Device
	case protocol.CECDataEvent:
		return ev.Device
	case protocol.InfraredDataEvent:
		return ev.Device
	case protocol.SerialDataEvent:
		return ev.Device
	case protocol.VideoStatusEvent:
		return ev.Device
	case protocol.SinkStatusEvent:
		return ev.Device
	default:
		return ""
	}
}

// subjectToken makes a device name safe as one NATS subject token. Device
// hostnames may contain spaces and dots, which are token separators or
// wildcards on the bus.
func subjectToken(device string) string {
	if device == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '*', '>':
			return '-'
		default:
			return r
		}
	}, device)
}
