// Package errors provides standardized error handling for the NetworkHD
// client.
//
// # Overview
//
// The package implements a three-class error classification system for
// device-control clients: Transient (temporary, retryable), Invalid (bad
// input or malformed wire data, non-retryable), and Fatal (unrecoverable,
// stop processing).
//
// It also defines the typed errors the public API surfaces: CommandError
// (the device explicitly reported failure), ResponseError (the response did
// not match the expected shape for its command family), DeviceNotFoundError
// (a device name the unit does not know), and DeviceQueryError (a bulk query
// named a device with an embedded error).
//
// # Usage
//
// Wrap errors with component context:
//
//	return errors.WrapTransient(err, "Client", "Connect", "open transport")
//
// Classify for retry decisions:
//
//	if errors.IsTransient(err) { ... }
package errors
