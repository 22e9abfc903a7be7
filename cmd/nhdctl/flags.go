package main

import (
	"flag"
	"fmt"
	"os"
)

// cliConfig holds command-line configuration.
type cliConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	Args        []string
}

func parseFlags() *cliConfig {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("NETWORKHD_CONFIG", "networkhd.yaml"),
		"Path to configuration file (env: NETWORKHD_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level", "",
		"Override configured log level: debug, info, warn, error")

	flag.StringVar(&cfg.LogFormat, "log-format", "",
		"Override configured log format: json, text")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = usage
	flag.Parse()
	cfg.Args = flag.Args()
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, `nhdctl - NetworkHD control utility

Usage:
  nhdctl [flags] send <command...>   issue one API command and print the reply
  nhdctl [flags] watch               stream notifications to stdout

Flags:
`)
	flag.PrintDefaults()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
