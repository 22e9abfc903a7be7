package transport

import (
	"context"
	"io"
	"strings"
	"sync"

	nherrors "github.com/c360/networkhd/errors"
)

// Script is an in-memory Transport for tests. Responses are staged per
// command; unsolicited lines (notifications, banners) are injected
// directly. Terminal framing matches the real units: every delivered line
// ends in "\r\n".
type Script struct {
	mu      sync.Mutex
	open    bool
	openErr error
	replies map[string][]string
	writes  []string

	incoming chan []byte
	done     chan struct{}
}

// NewScript creates a closed Script transport with no staged responses.
func NewScript() *Script {
	return &Script{
		replies: make(map[string][]string),
	}
}

// Stage queues a response to deliver when command is next written. Multiple
// responses for the same command are delivered in staging order. A response
// may contain embedded newlines for multi-line replies.
func (s *Script) Stage(command, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[command] = append(s.replies[command], response)
}

// Inject delivers an unsolicited line, as the unit does for notifications.
func (s *Script) Inject(line string) {
	s.mu.Lock()
	ch := s.incoming
	open := s.open
	s.mu.Unlock()

	if !open {
		return
	}
	ch <- []byte(line + "\r\n")
}

// FailNextOpen makes the next Open call return err, for breaker and
// reconnection tests.
func (s *Script) FailNextOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// Writes returns every command written so far, newline-trimmed.
func (s *Script) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}

// Kill simulates the link dying out from under the client: reads start
// failing while Close has not been called.
func (s *Script) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.open = false
	close(s.done)
}

// Open implements Transport.
func (s *Script) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s.openErr != nil {
		err := s.openErr
		s.openErr = nil
		return err
	}
	if s.open {
		return nherrors.ErrAlreadyConnected
	}

	s.open = true
	s.incoming = make(chan []byte, 256)
	s.done = make(chan struct{})
	return nil
}

// Close implements Transport.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil
	}
	s.open = false
	close(s.done)
	return nil
}

// IsOpen implements Transport.
func (s *Script) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Write implements Transport. Each written line is recorded; if a response
// is staged for it, the response is queued for the next Read.
func (s *Script) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return 0, nherrors.ErrNotConnected
	}

	cmd := strings.TrimRight(string(p), "\r\n")
	s.writes = append(s.writes, cmd)

	if queued := s.replies[cmd]; len(queued) > 0 {
		resp := queued[0]
		s.replies[cmd] = queued[1:]
		for _, line := range strings.Split(resp, "\n") {
			s.incoming <- []byte(line + "\r\n")
		}
	}
	return len(p), nil
}

// Read implements Transport. It blocks until a line is queued or the
// transport closes, then returns io.EOF.
func (s *Script) Read(p []byte) (int, error) {
	s.mu.Lock()
	if !s.open && s.incoming == nil {
		s.mu.Unlock()
		return 0, nherrors.ErrNotConnected
	}
	ch := s.incoming
	done := s.done
	s.mu.Unlock()

	select {
	case data := <-ch:
		n := copy(p, data)
		return n, nil
	case <-done:
		// Drain anything queued before reporting death.
		select {
		case data := <-ch:
			n := copy(p, data)
			return n, nil
		default:
			return 0, io.EOF
		}
	}
}
