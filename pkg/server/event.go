package server

import (
	"context"

	"github.com/vango-go/contextmenu/pkg/protocol"
)

// Event is one client event passing through the middleware chain.
type Event struct {
	Session *Session
	Frame   *protocol.EventFrame

	ctx  context.Context
	sync *protocol.SyncFrame
}

// Context returns the context the event is handled under.
func (e *Event) Context() context.Context { return e.ctx }

// SetContext replaces the context seen by later middleware.
func (e *Event) SetContext(ctx context.Context) { e.ctx = ctx }

// Sync returns the sync frame produced by the event. It is nil until the
// event has been handled, and stays nil if handling failed.
func (e *Event) Sync() *protocol.SyncFrame { return e.sync }

// Middleware wraps event handling. It must call next exactly once to let the
// event reach the surface, and return next's error unless it replaces it.
type Middleware func(e *Event, next func() error) error

// chain runs handler through mw, first to last.
func chain(e *Event, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}
	return mw[0](e, func() error { return chain(e, mw[1:], handler) })
}
