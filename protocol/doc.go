// Package protocol implements the NetworkHD wire-format codec: stateless
// parsers that turn raw response text into typed results, and validators
// for the per-family success conventions.
//
// The units prepend a login banner and echo the issued command before the
// real payload, so every parser first scans for its header token and
// discards everything before it. A missing header is a parse error, never
// a silent empty result. The one exception is data the protocol itself
// represents as empty (an unassigned TX slot, an empty scene list), which
// parses to a valid empty value.
//
// Parse errors wrap errors.ErrParsingFailed and name the exact defect
// (unclosed quotes, missing colon, wrong field count) so a caller can both
// classify and report them.
package protocol
