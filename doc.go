// Package networkhd is a control client for WyreStorm NetworkHD AV-over-IP
// systems. It speaks the controller's line-oriented API over an interactive
// SSH shell or a direct RS-232 link and exposes it as a typed Go API.
//
// The packages layer as follows:
//
//   - transport: byte-stream links (SSH shell, serial port, in-memory script
//     for tests) behind one Transport interface.
//   - protocol: the wire dialect: response parsers for every query family,
//     notification parsing, and the success conventions command families use.
//   - client: the session engine: connection lifecycle with circuit breaker
//     and reconnection, FIFO command/response correlation, and a notification
//     router. The protocol carries no request identifiers, so one command is
//     in flight at a time.
//   - commands: typed command groups (matrix switching, video walls,
//     multiview, device control, queries) over the client.
//   - bridge: optional republishing of notifications to NATS subjects.
//   - metric: Prometheus collectors and a scrape endpoint.
//   - config: YAML configuration for all of the above.
//
// The cmd/nhdctl utility ties the packages together behind a small CLI.
package networkhd
