package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vango-go/contextmenu/pkg/dom"
	"github.com/vango-go/contextmenu/pkg/protocol"
)

// View mounts components onto the root of a surface.
type View func(s *dom.Surface)

// Session is one client's view state.
// Event handling is serialized; the surface is never touched concurrently.
type Session struct {
	ID string

	surface    *dom.Surface
	config     *Config
	middleware []Middleware
	logger     *slog.Logger

	// mu serializes event handling
	mu sync.Mutex

	// writeMu serializes writes to conn
	writeMu sync.Mutex
	conn    *websocket.Conn

	closed atomic.Bool
	done   chan struct{}

	eventCount atomic.Int64
	errorCount atomic.Int64
	createdAt  time.Time
}

// NewSession creates a session with view mounted on a fresh surface.
// A nil config uses DefaultConfig and a nil logger uses slog.Default.
func NewSession(view View, config *Config, logger *slog.Logger, mw ...Middleware) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	s := &Session{
		ID:         id,
		surface:    dom.NewSurface(),
		config:     config.withDefaults(),
		middleware: mw,
		logger:     logger.With("session_id", id),
		done:       make(chan struct{}),
		createdAt:  time.Now(),
	}
	if view != nil {
		view(s.surface)
	}
	return s
}

// Surface returns the session's surface. Callers must not mutate it while
// events are being handled.
func (s *Session) Surface() *dom.Surface { return s.surface }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// InitialSync runs pending client responses and returns every attached node.
func (s *Session) InitialSync() *protocol.SyncFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.surface.Flush()
	return &protocol.SyncFrame{Kind: protocol.KindSync, Nodes: s.surface.Snapshot()}
}

// HandleEvent dispatches a client event through the middleware chain and
// returns the resulting changes. A failed event leaves its pending changes
// for the next sync.
func (s *Session) HandleEvent(ctx context.Context, frame *protocol.EventFrame) (*protocol.SyncFrame, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventCount.Add(1)
	e := &Event{Session: s, Frame: frame, ctx: ctx}
	err := chain(e, s.middleware, func() error {
		if err := s.dispatch(frame); err != nil {
			return err
		}
		e.sync = protocol.NewSyncFrame(frame.Seq, s.surface.Flush())
		return nil
	})
	if err != nil {
		s.errorCount.Add(1)
		return nil, err
	}
	return e.sync, nil
}

func (s *Session) dispatch(frame *protocol.EventFrame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"node", frame.Node,
				"type", frame.Type,
				"stack", string(debug.Stack()))
			err = &SessionError{SessionID: s.ID, Op: "dispatch " + frame.Type, Err: fmt.Errorf("%w: %v", ErrHandlerPanic, r)}
		}
	}()

	if err := s.surface.Dispatch(frame.Node, frame.Type, frame.Detail); err != nil {
		return &SessionError{SessionID: s.ID, Op: "dispatch " + frame.Type, Err: err}
	}
	return nil
}

// Serve runs the session over conn until the client disconnects, a read
// fails or the session is closed.
func (s *Session) Serve(ctx context.Context, conn *websocket.Conn) {
	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()
	defer s.Close()

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	if err := s.writeSync(s.InitialSync()); err != nil {
		s.logger.Error("initial sync failed", "error", err)
		return
	}
	s.logger.Info("session started")

	go s.heartbeatLoop()
	s.readLoop(ctx)
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeEvent(msg)
		if err != nil {
			s.logger.Warn("event decode error", "error", err)
			if werr := s.writeError(0, err); werr != nil {
				return
			}
			continue
		}

		out, err := s.HandleEvent(ctx, frame)
		if err != nil {
			s.logger.Debug("event failed", "seq", frame.Seq, "type", frame.Type, "error", err)
			err = s.writeError(frame.Seq, err)
		} else {
			err = s.writeSync(out)
		}
		if err != nil {
			s.logger.Error("write error", "error", err)
			return
		}
	}
}

// heartbeatLoop sends pings until the session is closed.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				s.logger.Debug("ping failed", "error", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.conn == nil {
		return ErrNoConnection
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

func (s *Session) writeSync(f *protocol.SyncFrame) error {
	data, err := protocol.EncodeSync(f)
	if err != nil {
		return err
	}
	return s.write(data)
}

func (s *Session) writeError(seq uint64, err error) error {
	data, encErr := protocol.EncodeError(&protocol.ErrorFrame{
		Seq:     seq,
		Code:    ErrorCode(err),
		Message: clientMessage(err),
	})
	if encErr != nil {
		return encErr
	}
	return s.write(data)
}

func (s *Session) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the session and its connection. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.writeMu.Unlock()

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"errors", s.errorCount.Load(),
		"duration", time.Since(s.createdAt))
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stats returns the session's event counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		Events:    s.eventCount.Load(),
		Errors:    s.errorCount.Load(),
		Nodes:     s.nodeCount(),
		CreatedAt: s.createdAt,
	}
}

func (s *Session) nodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.NodeCount()
}

// SessionStats contains session counters.
type SessionStats struct {
	Events    int64
	Errors    int64
	Nodes     int
	CreatedAt time.Time
}
