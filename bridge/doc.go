// Package bridge republishes NetworkHD notifications onto a message bus.
//
// A Bridge subscribes to every notification category on a client and
// publishes each parsed event as JSON to
//
//	<prefix>.<category>.<device>
//
// with device names sanitized into valid subject tokens. The default
// prefix is "networkhd.events". Publishing is best effort: a failed
// publish is logged and dropped, never propagated back to the dispatcher.
//
//	conn, _ := nats.Connect(nats.DefaultURL)
//	b := bridge.New(c, bridge.NewNATSPublisher(conn))
//	b.Start()
//	defer b.Stop()
package bridge
