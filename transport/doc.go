// Package transport provides the character-stream links the client speaks
// over: an interactive SSH shell and a raw serial port, plus an in-memory
// Script transport for tests.
//
// A Transport is a plain byte pipe. Line framing, command correlation and
// notification routing all live above it in the client package; the
// transport's only jobs are opening the link, moving bytes, and answering
// IsOpen against the live handle rather than a cached flag.
//
// Both real adapters block in Read until data arrives or the link dies.
// The client runs Read on a dedicated goroutine, so a transport must
// guarantee that Close unblocks any in-flight Read.
package transport
