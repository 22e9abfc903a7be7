package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"

	nherrors "github.com/c360/networkhd/errors"
)

// SerialConfig holds the parameters for a direct RS-232 link to a unit.
type SerialConfig struct {
	// Port is the device path, for example /dev/ttyUSB0 or COM3.
	Port string

	// Baud is the line rate. The units default to 115200.
	Baud int

	// Framing is the compact "<databits><parity><stopbits>" form, for
	// example "8n1". Empty means "8n1".
	Framing string
}

// Serial speaks to a unit over a direct RS-232 link. It implements
// Transport.
type Serial struct {
	cfg    SerialConfig
	logger *slog.Logger

	mu   sync.Mutex
	port serial.Port
}

// NewSerial creates a serial transport. The port is not opened until Open.
func NewSerial(cfg SerialConfig, logger *slog.Logger) *Serial {
	if logger == nil {
		logger = slog.Default()
	}
	return &Serial{cfg: cfg, logger: logger}
}

// parseFraming converts a compact framing string like "8n1" into port
// mode fields.
func parseFraming(framing string) (dataBits int, parity serial.Parity, stopBits serial.StopBits, err error) {
	if framing == "" {
		framing = "8n1"
	}
	f := strings.ToLower(framing)
	if len(f) != 3 {
		return 0, 0, 0, fmt.Errorf("framing %q: want <databits><parity><stopbits>, e.g. 8n1", framing)
	}

	dataBits, err = strconv.Atoi(f[0:1])
	if err != nil || dataBits < 5 || dataBits > 8 {
		return 0, 0, 0, fmt.Errorf("framing %q: data bits must be 5-8", framing)
	}

	switch f[1] {
	case 'n':
		parity = serial.NoParity
	case 'o':
		parity = serial.OddParity
	case 'e':
		parity = serial.EvenParity
	default:
		return 0, 0, 0, fmt.Errorf("framing %q: parity must be n, o or e", framing)
	}

	switch f[2] {
	case '1':
		stopBits = serial.OneStopBit
	case '2':
		stopBits = serial.TwoStopBits
	default:
		return 0, 0, 0, fmt.Errorf("framing %q: stop bits must be 1 or 2", framing)
	}

	return dataBits, parity, stopBits, nil
}

// Open opens the serial port with the configured line parameters.
func (s *Serial) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port != nil {
		return nherrors.ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.Port == "" {
		return fmt.Errorf("%w: serial transport requires a port path", nherrors.ErrInvalidConfig)
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 115200
	}
	dataBits, parity, stopBits, err := parseFraming(s.cfg.Framing)
	if err != nil {
		return nherrors.WrapInvalid(err, "Serial", "Open", "parse framing")
	}

	port, err := serial.Open(s.cfg.Port, &serial.Mode{
		BaudRate: baud,
		DataBits: dataBits,
		Parity:   parity,
		StopBits: stopBits,
	})
	if err != nil {
		return nherrors.WrapTransient(err, "Serial", "Open", "open port")
	}

	s.port = port
	s.logger.Debug("serial port opened", "port", s.cfg.Port, "baud", baud)
	return nil
}

// Close releases the port. A blocked Read returns once the port closes.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	if err != nil {
		return nherrors.Wrap(err, "Serial", "Close", "close port")
	}
	return nil
}

// IsOpen probes the live port by reading the modem status lines.
func (s *Serial) IsOpen() bool {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()

	if port == nil {
		return false
	}
	_, err := port.GetModemStatusBits()
	return err == nil
}

// Write sends raw bytes down the line.
func (s *Serial) Write(p []byte) (int, error) {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()

	if port == nil {
		return 0, nherrors.ErrNotConnected
	}
	return port.Write(p)
}

// Read blocks until bytes arrive or the port closes.
func (s *Serial) Read(p []byte) (int, error) {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()

	if port == nil {
		return 0, nherrors.ErrNotConnected
	}
	return port.Read(p)
}
