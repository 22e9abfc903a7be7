package transport

import "context"

// Transport is a bidirectional character stream to a NetworkHD unit.
//
// Implementations must make Close unblock a concurrent Read, and must
// answer IsOpen by probing the underlying handle.
type Transport interface {
	// Open establishes the link. It respects ctx for dial/handshake
	// deadlines and cancellation.
	Open(ctx context.Context) error

	// Close tears the link down and releases the handle. Closing an
	// already-closed transport is a no-op.
	Close() error

	// IsOpen reports whether the link is currently usable. It probes the
	// live handle; a transport that died since Open returns false.
	IsOpen() bool

	// Write sends raw bytes. The caller is responsible for line endings.
	Write(p []byte) (int, error)

	// Read blocks until bytes arrive or the link dies. On death it
	// returns a non-nil error (io.EOF included).
	Read(p []byte) (int, error)
}
