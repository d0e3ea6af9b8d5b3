package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vstore/internal/demo"
	vserrors "github.com/vango-dev/vstore/internal/errors"
	"github.com/vango-dev/vstore/pkg/devtools"
	"github.com/vango-dev/vstore/pkg/store"
	"github.com/vango-dev/vstore/pkg/telemetry"
)

func inspectCmd(opts *rootOptions) *cobra.Command {
	var addr string
	var churn bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the read-only store inspector",
		Long: `Serve the devtools inspector over the demo todo store.

  GET /stores              list stores
  GET /stores/todos        current state
  GET /stores/todos/ws     live state frames
  GET /metrics             Prometheus metrics

With --churn the command toggles a random todo on every tick so the
stream has something to show.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			if addr == "" {
				addr = cfg.Addr()
			}
			tick, _ := cfg.TickInterval()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			observer := telemetry.Multi(
				telemetry.Prometheus(telemetry.WithRegistry(reg)),
				telemetry.Tracing(),
			)
			todos := demo.NewTodos(cfg.Demo.Todos,
				store.WithName("todos"),
				store.WithLogger(logger),
				store.WithObserver(observer),
			)

			inspOpts := []devtools.Option{devtools.WithLogger(logger)}
			if cfg.MetricsEnabled() {
				inspOpts = append(inspOpts, devtools.WithGatherer(reg))
			}
			insp := devtools.NewInspector(inspOpts...)
			if err := devtools.Expose(insp, todos.Name(), todos); err != nil {
				return vserrors.New("E141").Wrap(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if churn {
				go demo.Churn(ctx, todos, tick)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           insp.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("inspector listening", "addr", addr, "metrics", cfg.MetricsEnabled())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return vserrors.New("E140").Wrap(err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down inspector")
			insp.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return vserrors.New("E140").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&churn, "churn", true, "toggle a random todo on every tick")

	return cmd
}
