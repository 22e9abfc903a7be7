package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	nherrors "github.com/c360/networkhd/errors"
)

// Transport selection values for DeviceConfig.Transport.
const (
	TransportSSH    = "ssh"
	TransportSerial = "serial"
)

// Duration wraps time.Duration so YAML files can say "10s" or "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("%w: duration must be a string like \"10s\"", nherrors.ErrInvalidConfig)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid duration %q", nherrors.ErrInvalidConfig, raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root configuration document.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Client  ClientConfig  `yaml:"client"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// DeviceConfig selects and parameterizes the transport to the unit.
type DeviceConfig struct {
	Transport string       `yaml:"transport"`
	SSH       SSHConfig    `yaml:"ssh"`
	Serial    SerialConfig `yaml:"serial"`
}

// SSHConfig configures the SSH shell transport.
type SSHConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	KnownHostsFile string   `yaml:"knownHostsFile"`
	DialTimeout    Duration `yaml:"dialTimeout"`
}

// SerialConfig configures the RS-232 transport.
type SerialConfig struct {
	Port    string `yaml:"port"`
	Baud    int    `yaml:"baud"`
	Framing string `yaml:"framing"`
}

// ClientConfig tunes the connection engine.
type ClientConfig struct {
	CommandTimeout    Duration `yaml:"commandTimeout"`
	BreakerThreshold  int      `yaml:"breakerThreshold"`
	BreakerTimeout    Duration `yaml:"breakerTimeout"`
	HeartbeatInterval Duration `yaml:"heartbeatInterval"`
	ReconnectAttempts int      `yaml:"reconnectAttempts"`
	ReconnectDelay    Duration `yaml:"reconnectDelay"`
}

// NATSConfig configures the optional notification bridge.
type NATSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with every tunable at its default. The device
// section is intentionally empty; there is no sensible default unit address.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Transport: TransportSSH,
			SSH: SSHConfig{
				Port:        10022,
				DialTimeout: Duration(10 * time.Second),
			},
			Serial: SerialConfig{
				Baud:    115200,
				Framing: "8n1",
			},
		},
		Client: ClientConfig{
			CommandTimeout:    Duration(10 * time.Second),
			BreakerThreshold:  3,
			BreakerTimeout:    Duration(30 * time.Second),
			HeartbeatInterval: Duration(30 * time.Second),
			ReconnectAttempts: 3,
			ReconnectDelay:    Duration(5 * time.Second),
		},
		NATS: NATSConfig{
			SubjectPrefix: "networkhd.events",
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads, decodes and validates a configuration file. Unknown YAML keys
// are rejected so typos surface at startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nherrors.WrapInvalid(err, "config", "Load", "reading configuration file")
	}
	return Parse(data)
}

// Parse decodes and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", nherrors.ErrInvalidConfig, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets secrets stay out of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("NETWORKHD_SSH_PASSWORD"); v != "" {
		c.Device.SSH.Password = v
	}
	if v := os.Getenv("NETWORKHD_NATS_URL"); v != "" {
		c.NATS.URL = v
	}
}

// Validate checks the whole document before any connection is attempted.
func (c *Config) Validate() error {
	switch c.Device.Transport {
	case TransportSSH:
		if c.Device.SSH.Host == "" {
			return fmt.Errorf("%w: device.ssh.host", nherrors.ErrMissingConfig)
		}
		if c.Device.SSH.Username == "" {
			return fmt.Errorf("%w: device.ssh.username", nherrors.ErrMissingConfig)
		}
		if c.Device.SSH.Port <= 0 || c.Device.SSH.Port > 65535 {
			return fmt.Errorf("%w: device.ssh.port %d out of range", nherrors.ErrInvalidConfig, c.Device.SSH.Port)
		}
		if c.Device.SSH.DialTimeout <= 0 {
			return fmt.Errorf("%w: device.ssh.dialTimeout must be positive", nherrors.ErrInvalidConfig)
		}
	case TransportSerial:
		if c.Device.Serial.Port == "" {
			return fmt.Errorf("%w: device.serial.port", nherrors.ErrMissingConfig)
		}
		if c.Device.Serial.Baud <= 0 {
			return fmt.Errorf("%w: device.serial.baud must be positive", nherrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: device.transport must be %q or %q, got %q",
			nherrors.ErrInvalidConfig, TransportSSH, TransportSerial, c.Device.Transport)
	}

	if c.Client.CommandTimeout <= 0 {
		return fmt.Errorf("%w: client.commandTimeout must be positive", nherrors.ErrInvalidConfig)
	}
	if c.Client.BreakerThreshold <= 0 {
		return fmt.Errorf("%w: client.breakerThreshold must be positive", nherrors.ErrInvalidConfig)
	}
	if c.Client.BreakerTimeout <= 0 {
		return fmt.Errorf("%w: client.breakerTimeout must be positive", nherrors.ErrInvalidConfig)
	}
	if c.Client.HeartbeatInterval <= 0 {
		return fmt.Errorf("%w: client.heartbeatInterval must be positive", nherrors.ErrInvalidConfig)
	}
	if c.Client.ReconnectAttempts <= 0 {
		return fmt.Errorf("%w: client.reconnectAttempts must be positive", nherrors.ErrInvalidConfig)
	}
	if c.Client.ReconnectDelay <= 0 {
		return fmt.Errorf("%w: client.reconnectDelay must be positive", nherrors.ErrInvalidConfig)
	}

	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("%w: nats.url (nats is enabled)", nherrors.ErrMissingConfig)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fmt.Errorf("%w: metrics.port %d out of range", nherrors.ErrInvalidConfig, c.Metrics.Port)
		}
		if c.Metrics.Path == "" {
			return fmt.Errorf("%w: metrics.path", nherrors.ErrMissingConfig)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", nherrors.ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", nherrors.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
