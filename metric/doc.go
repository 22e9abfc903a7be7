// Package metric provides Prometheus instrumentation for the NetworkHD
// client and an HTTP server exposing it.
//
// A Collector owns a private Prometheus registry so multiple clients in one
// process never collide on metric names. The client package records into
// the collector; Server publishes the registry on /metrics.
//
//	collector := metric.NewCollector()
//	c, _ := client.New(tr, client.WithCollector(collector))
//
//	srv := metric.NewServer(9090, "/metrics", collector)
//	go srv.Start()
//	defer srv.Stop(context.Background())
package metric
