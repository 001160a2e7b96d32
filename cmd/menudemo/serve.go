package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-go/contextmenu/internal/demo"
	"github.com/vango-go/contextmenu/pkg/middleware"
	"github.com/vango-go/contextmenu/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		metricsPath string
		view        string
		maxSessions int
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			mount, err := demo.Lookup(view)
			if err != nil {
				return err
			}

			cfg := server.DefaultConfig().
				WithAddress(addr).
				WithMetricsPath(metricsPath).
				WithMaxSessions(maxSessions)
			if err := cfg.Validate(); err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := middleware.NewMetrics(middleware.WithRegistry(reg))

			srv := server.New(mount, cfg,
				server.WithMiddleware(metrics.Middleware(), middleware.OpenTelemetry()),
				server.WithSessionObserver(metrics),
				server.WithGatherer(reg),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&metricsPath, "metrics-path", "/metrics", "Path to serve Prometheus metrics on")
	cmd.Flags().StringVar(&view, "view", "all", "Demo view to serve")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 = no limit)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}
