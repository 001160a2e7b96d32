package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-go/contextmenu/pkg/dom"
)

// Route paths.
const (
	PagePath   = "/"
	SocketPath = "/ws"
	HealthPath = "/healthz"
)

// Server serves one view to many sessions.
type Server struct {
	view       View
	config     *Config
	middleware []Middleware
	observers  []SessionObserver
	gatherer   prometheus.Gatherer

	sessions *SessionManager
	router   chi.Router
	upgrader websocket.Upgrader

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMiddleware appends event middleware. Middleware runs in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Server) { s.middleware = append(s.middleware, mw...) }
}

// WithSessionObserver registers observers for session start and end.
func WithSessionObserver(o ...SessionObserver) Option {
	return func(s *Server) { s.observers = append(s.observers, o...) }
}

// WithGatherer serves metrics from g at Config.MetricsPath.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a Server for view. A nil config uses DefaultConfig; unset
// fields are filled from it.
func New(view View, config *Config, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		view:   view,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := config.Validate(); err != nil {
		s.logger.Error("config validation failed", "error", err)
	}
	s.sessions = NewSessionManager(config.MaxSessions, s.observers...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get(PagePath, s.handlePage)
	r.Get(SocketPath, s.HandleWebSocket)
	r.Get(HealthPath, s.handleHealth)
	if s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's routes for mounting in another router.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
%s
</html>
`

// handlePage renders a fresh view. The page is static; interaction needs a
// WebSocket session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	surface := dom.NewSurface()
	if s.view != nil {
		s.view(surface)
	}
	surface.Flush()

	body, err := dom.RenderString(surface.Root())
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, html.EscapeString(s.config.Title), body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// HandleWebSocket upgrades the request and runs a session until it ends.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	session := NewSession(s.view, s.config, s.logger, s.middleware...)
	if err := s.sessions.Add(session); err != nil {
		s.logger.Warn("session rejected", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Remove(session.ID)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", err)
		session.Close()
		return
	}
	session.Serve(r.Context(), conn)
}

// ListenAndServe serves on Config.Address until ctx is done, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager { return s.sessions }

// Config returns the server configuration.
func (s *Server) Config() *Config { return s.config }

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger { return s.logger }
