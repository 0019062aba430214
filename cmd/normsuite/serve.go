package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite"
	httpAdapter "github.com/aretw0/normsuite/internal/adapters/http"
	"github.com/aretw0/normsuite/internal/cli"
	"github.com/aretw0/normsuite/internal/presentation/tui"
	"github.com/aretw0/normsuite/pkg/adapters/file"
	"github.com/aretw0/normsuite/pkg/adapters/memory"
	"github.com/aretw0/normsuite/pkg/adapters/redis"
	"github.com/aretw0/normsuite/pkg/observability"
	"github.com/aretw0/normsuite/pkg/persistence/middleware"
	"github.com/aretw0/normsuite/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes inference over a JSON API. Stateless requests go to /v1/infer;
persistent suites are created under /v1/suites and kept in the selected
store (memory, file or redis). Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		lockTTL, _ := cmd.Flags().GetDuration("lock-ttl")

		opts, logger, err := suiteOptions(cmd)
		if err != nil {
			return err
		}

		store, locker, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		store = middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewValidationMiddleware(),
		)

		metrics, err := observability.NewMetrics("normsuite", prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, normsuite.WithLifecycleHooks(metrics.Hooks()))

		handler, err := httpAdapter.NewHandler(httpAdapter.Config{
			Store:   store,
			Locker:  locker,
			Logger:  logger,
			LockTTL: lockTTL,
			Options: opts,
		})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if cli.IsTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(normsuite.Version))
		}

		ctx, stop := cli.ShutdownContext(cmd.Context(), logger)
		defer stop()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting normsuite server", "address", srv.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "normsuite server stopped gracefully")
			return nil
		}
	},
}

func openStore(cmd *cobra.Command) (ports.SuiteStore, ports.DistributedLocker, func(), error) {
	kind, _ := cmd.Flags().GetString("store")
	switch kind {
	case "memory":
		return memory.NewStore(), memory.NewLocker(), func() {}, nil
	case "file":
		dir, _ := cmd.Flags().GetString("store-dir")
		return file.New(dir), memory.NewLocker(), func() {}, nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		ttl, _ := cmd.Flags().GetDuration("redis-ttl")

		store := redis.New(addr, password, db, redis.WithTTL(ttl))
		locker := redis.NewLocker(store.Client(), redis.DefaultPrefix)
		closeStore := func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err)
			}
		}
		return store, locker, closeStore, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q (want memory, file or redis)", kind)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Suite store: memory, file or redis")
	serveCmd.Flags().String("store-dir", ".normsuite/suites", "Directory of the file store")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration of stored suites (0 keeps them)")
	serveCmd.Flags().Duration("lock-ttl", httpAdapter.DefaultLockTTL, "Maximum time a suite update may hold its lock")
}
