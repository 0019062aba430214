package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownContext returns a context that ends on SIGINT or SIGTERM, logging
// the request. Calling stop releases the signal handler without logging.
func ShutdownContext(parent context.Context, logger *slog.Logger) (ctx context.Context, stop context.CancelFunc) {
	ctx, release := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	unlog := context.AfterFunc(ctx, func() {
		if parent.Err() == nil {
			logger.Info("shutdown signal received")
		}
	})
	return ctx, func() {
		unlog()
		release()
	}
}
