package middleware

import (
	"time"

	"github.com/vango-go/contextmenu/pkg/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "contextmenu"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "contextmenu").
	TracerName string

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(e *server.Event) bool

	// AttributeExtractor extracts custom attributes from the event.
	AttributeExtractor func(e *server.Event) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e *server.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(e *server.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every event.
//
// Each span is named "contextmenu.<event type>" and carries the session id,
// target node and sequence number. Failed events record the error; handled
// events record the number of synced nodes.
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(e *server.Event, next func() error) error {
		if config.Filter != nil && !config.Filter(e) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("contextmenu.session_id", e.Session.ID),
			attribute.String("contextmenu.event_type", e.Frame.Type),
			attribute.Int64("contextmenu.node_id", int64(e.Frame.Node)),
			attribute.Int64("contextmenu.seq", int64(e.Frame.Seq)),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(e)...)
		}

		ctx, span := config.tracer.Start(
			e.Context(),
			"contextmenu."+e.Frame.Type,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()
		e.SetContext(ctx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("contextmenu.error_code", string(server.ErrorCode(err))))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		if sync := e.Sync(); sync != nil {
			span.SetAttributes(attribute.Int("contextmenu.sync_nodes", len(sync.Nodes)))
		}
		return err
	}
}
