package client

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// pendingResponseBuffer sizes each pending command's line channel. Device
// replies are short; the buffer only needs to absorb the command echo plus
// a handful of continuation lines before Send drains them.
const pendingResponseBuffer = 16

// pendingCommand is one outstanding command awaiting device lines.
type pendingCommand struct {
	id    uuid.UUID
	lines chan string
}

// correlator attributes response lines to outstanding commands. The
// protocol carries no request identifiers, so attribution is strictly
// first-in-first-out: every non-notification line belongs to the oldest
// pending command.
type correlator struct {
	mu      sync.Mutex
	pending []*pendingCommand
	logger  *slog.Logger
}

func newCorrelator(logger *slog.Logger) *correlator {
	return &correlator{logger: logger}
}

// register enqueues a new pending command and returns its entry. The caller
// must remove the entry when done, whether the command succeeded, timed out
// or was cancelled.
func (c *correlator) register() *pendingCommand {
	p := &pendingCommand{
		id:    uuid.New(),
		lines: make(chan string, pendingResponseBuffer),
	}
	c.mu.Lock()
	c.pending = append(c.pending, p)
	c.mu.Unlock()
	return p
}

// remove drops a pending entry regardless of its queue position. Removing
// an entry that is already gone is a no-op.
func (c *correlator) remove(p *pendingCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, q := range c.pending {
		if q.id == p.id {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// deliver hands a response line to the oldest pending command. It returns
// false when no command is outstanding, which marks the line as unsolicited.
func (c *correlator) deliver(line string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return false
	}
	p := c.pending[0]
	select {
	case p.lines <- line:
	default:
		// The waiter stopped draining; a stuck channel must not stall
		// the dispatcher.
		c.logger.Warn("dropping response line for saturated command",
			"sequence", p.id.String(),
			"line", line)
	}
	return true
}
