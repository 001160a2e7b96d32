// Package middleware provides event middleware for menu sessions.
//
// This package includes:
//   - Prometheus metrics for events, syncs and sessions
//   - OpenTelemetry tracing of every handled event
//
// # Prometheus Metrics
//
// Metrics are registered on the registry they are created with:
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//
//	srv := server.New(view, cfg,
//	    server.WithMiddleware(metrics.Middleware()),
//	    server.WithSessionObserver(metrics),
//	    server.WithGatherer(reg),
//	)
//
// Collected:
//   - contextmenu_events_total: events by type and status
//   - contextmenu_event_duration_seconds: event handling duration by type
//   - contextmenu_event_errors_total: failed events by type and error code
//   - contextmenu_sync_nodes_total: nodes sent in sync frames
//   - contextmenu_active_sessions: live WebSocket sessions
//
// # OpenTelemetry
//
// OpenTelemetry starts one span per event, named after the event type, and
// hands the span's context to later middleware through Event.Context:
//
//	server.WithMiddleware(middleware.OpenTelemetry(middleware.WithTracerName("menus")))
//
// The tracer comes from the global provider; configure it with
// otel.SetTracerProvider before starting the server.
package middleware
