package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	nherrors "github.com/c360/networkhd/errors"
)

// SSHConfig holds the parameters for an interactive SSH shell to a unit.
type SSHConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// KnownHostsFile is the path to an OpenSSH known_hosts file used to
	// verify the unit's host key. Empty means accept any host key, which
	// matches how these units ship (self-signed keys, no provisioning).
	KnownHostsFile string

	// DialTimeout bounds the TCP dial and SSH handshake. Zero means 10s.
	DialTimeout time.Duration
}

// SSH speaks to a unit over an interactive SSH shell with a PTY, the way
// the vendor's own console does. It implements Transport.
type SSH struct {
	cfg    SSHConfig
	logger *slog.Logger

	mu      sync.Mutex
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader
}

// NewSSH creates an SSH transport. The link is not opened until Open.
func NewSSH(cfg SSHConfig, logger *slog.Logger) *SSH {
	if logger == nil {
		logger = slog.Default()
	}
	return &SSH{cfg: cfg, logger: logger}
}

// Open dials the unit, authenticates, allocates a PTY and starts a shell.
func (s *SSH) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nherrors.ErrAlreadyConnected
	}
	if s.cfg.Host == "" || s.cfg.Username == "" {
		return fmt.Errorf("%w: ssh transport requires host and username", nherrors.ErrInvalidConfig)
	}

	hostKey := ssh.InsecureIgnoreHostKey() //nolint:gosec // units ship with self-signed keys
	if s.cfg.KnownHostsFile != "" {
		cb, err := knownhosts.New(s.cfg.KnownHostsFile)
		if err != nil {
			return nherrors.WrapInvalid(err, "SSH", "Open", "load known_hosts file")
		}
		hostKey = cb
	}

	timeout := s.cfg.DialTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientCfg := &ssh.ClientConfig{
		User:            s.cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback: hostKey,
		Timeout:         timeout,
	}

	port := s.cfg.Port
	if port == 0 {
		port = 10022
	}
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nherrors.WrapTransient(err, "SSH", "Open", "dial unit")
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "ssh handshake")
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "open session")
	}

	// The unit's CLI only answers on an interactive shell; a bare exec
	// channel is silently ignored by the firmware.
	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 115200,
		ssh.TTY_OP_OSPEED: 115200,
	}
	if err := session.RequestPty("xterm", 24, 200, modes); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "request pty")
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "acquire stdin")
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "acquire stdout")
	}

	if err := session.Shell(); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nherrors.WrapTransient(err, "SSH", "Open", "start shell")
	}

	s.client = client
	s.session = session
	s.stdin = stdin
	s.stdout = stdout

	s.logger.Debug("ssh shell established", "addr", addr, "user", s.cfg.Username)
	return nil
}

// Close tears the shell and connection down. Safe to call when closed.
func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}

	// Closing the session first lets a blocked Read on stdout return.
	if s.session != nil {
		_ = s.session.Close()
	}
	err := s.client.Close()

	s.client = nil
	s.session = nil
	s.stdin = nil
	s.stdout = nil

	if err != nil && err != io.EOF {
		return nherrors.Wrap(err, "SSH", "Close", "close connection")
	}
	return nil
}

// IsOpen probes the live connection with an SSH keepalive round trip.
func (s *SSH) IsOpen() bool {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return false
	}
	_, _, err := client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}

// Write sends raw bytes down the shell's stdin.
func (s *SSH) Write(p []byte) (int, error) {
	s.mu.Lock()
	stdin := s.stdin
	s.mu.Unlock()

	if stdin == nil {
		return 0, nherrors.ErrNotConnected
	}
	return stdin.Write(p)
}

// Read blocks on the shell's stdout until data arrives or the link dies.
func (s *SSH) Read(p []byte) (int, error) {
	s.mu.Lock()
	stdout := s.stdout
	s.mu.Unlock()

	if stdout == nil {
		return 0, nherrors.ErrNotConnected
	}
	return stdout.Read(p)
}
