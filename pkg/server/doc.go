// Package server serves menu views over HTTP and WebSocket.
//
// Every WebSocket connection gets its own Session: a fresh dom.Surface with
// the view mounted on it. The session sends a full sync on connect, then
// answers each client event frame with a sync frame carrying the node
// changes the event produced, or an error frame.
//
// # Routes
//
//	GET /         server-side rendered page of a fresh view
//	GET /ws       WebSocket session
//	GET /metrics  Prometheus metrics (when a gatherer is configured)
//	GET /healthz  liveness probe
//
// # Event pipeline
//
// Events pass through the configured Middleware chain before reaching the
// surface, which is how metrics and tracing are attached:
//
//	srv := server.New(demo.Basic, server.DefaultConfig(),
//	    server.WithMiddleware(metrics.Middleware(), middleware.OpenTelemetry()),
//	)
package server
