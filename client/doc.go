// Package client implements the connection and dispatch engine for a
// NetworkHD unit: connection lifecycle with a circuit breaker and bounded
// reconnection, a dispatcher goroutine that splits the transport's byte
// stream into lines, a FIFO command correlator, and a notification router.
//
// The wire protocol carries no request identifiers, so at most one command
// may be in flight at a time; Send serializes callers on a single command
// lock. This is a protocol limitation, not a tunable: concurrent sends
// would make response attribution ambiguous.
//
// A minimal session:
//
//	c, err := client.New(transport.NewSSH(cfg, logger))
//	if err != nil { ... }
//	if err := c.Connect(ctx); err != nil { ... }
//	defer c.Disconnect()
//
//	sub := c.Subscribe(protocol.CategoryEndpoint, func(n protocol.Notification) {
//		ev := n.(protocol.EndpointStatusEvent)
//		log.Printf("%s online=%v", ev.Device, ev.Online)
//	})
//	defer c.Unsubscribe(sub)
//
//	raw, err := c.Send(ctx, "config get version")
package client
