package bridge

import (
	"context"

	"github.com/nats-io/nats.go"

	nherrors "github.com/c360/networkhd/errors"
)

// NATSPublisher adapts a *nats.Conn to the Publisher interface.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher wraps an established NATS connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// Publish implements Publisher. Core NATS publishing is fire-and-forget;
// the context is accepted for interface symmetry but not consulted.
func (p *NATSPublisher) Publish(_ context.Context, subject string, data []byte) error {
	if p.conn == nil || !p.conn.IsConnected() {
		return nherrors.ErrNotConnected
	}
	return p.conn.Publish(subject, data)
}
