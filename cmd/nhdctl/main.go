// Package main implements nhdctl, a command-line utility for NetworkHD
// AV-over-IP controllers: it issues API commands over SSH or RS-232 and
// streams notifications, optionally republishing them to NATS and exposing
// Prometheus metrics, all driven by one YAML configuration file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/networkhd/bridge"
	"github.com/c360/networkhd/client"
	"github.com/c360/networkhd/config"
	"github.com/c360/networkhd/metric"
	"github.com/c360/networkhd/protocol"
	"github.com/c360/networkhd/transport"
)

const (
	version = "0.1.0"

	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("nhdctl failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cli := parseFlags()
	if cli.ShowVersion {
		fmt.Printf("nhdctl %s\n", version)
		return nil
	}
	if len(cli.Args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}
	logger := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metric.NewCollector()
	c, err := buildClient(cfg, logger, collector)
	if err != nil {
		return err
	}

	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := c.Disconnect(); err != nil {
			logger.Warn("disconnect failed", "error", err)
		}
	}()

	switch cli.Args[0] {
	case "send":
		if len(cli.Args) < 2 {
			return fmt.Errorf("send requires a command")
		}
		return runSend(ctx, c, strings.Join(cli.Args[1:], " "))
	case "watch":
		return runWatch(ctx, cfg, c, collector, logger)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cli.Args[0])
	}
}

func buildClient(cfg *config.Config, logger *slog.Logger, collector *metric.Collector) (*client.Client, error) {
	var tr transport.Transport
	switch cfg.Device.Transport {
	case config.TransportSSH:
		tr = transport.NewSSH(transport.SSHConfig{
			Host:           cfg.Device.SSH.Host,
			Port:           cfg.Device.SSH.Port,
			Username:       cfg.Device.SSH.Username,
			Password:       cfg.Device.SSH.Password,
			KnownHostsFile: cfg.Device.SSH.KnownHostsFile,
			DialTimeout:    cfg.Device.SSH.DialTimeout.Std(),
		}, logger)
	case config.TransportSerial:
		tr = transport.NewSerial(transport.SerialConfig{
			Port:    cfg.Device.Serial.Port,
			Baud:    cfg.Device.Serial.Baud,
			Framing: cfg.Device.Serial.Framing,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Device.Transport)
	}

	return client.New(tr,
		client.WithLogger(logger),
		client.WithCollector(collector),
		client.WithCommandTimeout(cfg.Client.CommandTimeout.Std()),
		client.WithBreakerThreshold(cfg.Client.BreakerThreshold),
		client.WithBreakerTimeout(cfg.Client.BreakerTimeout.Std()),
		client.WithHeartbeatInterval(cfg.Client.HeartbeatInterval.Std()),
	)
}

func runSend(ctx context.Context, c *client.Client, command string) error {
	resp, err := c.Send(ctx, command)
	if err != nil {
		return err
	}
	fmt.Println(resp)
	return nil
}

// runWatch prints every notification as one JSON line per event and keeps
// running until interrupted. The metrics endpoint and NATS bridge start
// here when the configuration enables them.
func runWatch(ctx context.Context, cfg *config.Config, c *client.Client, collector *metric.Collector, logger *slog.Logger) error {
	if cfg.Metrics.Enabled {
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, collector)
		go func() {
			// Start blocks until Stop; a clean shutdown surfaces as
			// http.ErrServerClosed.
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stopCancel()
			if err := server.Stop(stopCtx); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	if cfg.NATS.Enabled {
		conn, err := nats.Connect(cfg.NATS.URL, nats.Name("nhdctl"))
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer conn.Close()

		b := bridge.New(c, bridge.NewNATSPublisher(conn),
			bridge.WithLogger(logger),
			bridge.WithSubjectPrefix(cfg.NATS.SubjectPrefix),
		)
		if err := b.Start(); err != nil {
			return fmt.Errorf("start bridge: %w", err)
		}
		defer b.Stop()
	}

	enc := json.NewEncoder(os.Stdout)
	categories := []string{
		protocol.CategoryEndpoint,
		protocol.CategoryCEC,
		protocol.CategoryInfrared,
		protocol.CategorySerial,
		protocol.CategoryVideo,
		protocol.CategorySink,
	}
	for _, category := range categories {
		sub := c.Subscribe(category, func(event protocol.Notification) {
			line := struct {
				Category string                `json:"category"`
				Event    protocol.Notification `json:"event"`
			}{Category: category, Event: event}
			if err := enc.Encode(line); err != nil {
				logger.Warn("encode notification", "error", err)
			}
		})
		defer c.Unsubscribe(sub)
	}

	logger.Info("watching for notifications", "transport", cfg.Device.Transport)
	<-ctx.Done()
	return nil
}
