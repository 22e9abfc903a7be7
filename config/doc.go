// Package config loads and validates the YAML configuration used by
// cmd/nhdctl and embedding applications.
//
// Configuration is validated before any I/O happens: transport selection,
// credentials and every duration or count must be consistent up front, so a
// bad file fails at startup rather than mid-session. Secrets may be left
// out of the file and supplied through the environment (NETWORKHD_SSH_PASSWORD,
// NETWORKHD_NATS_URL).
package config
