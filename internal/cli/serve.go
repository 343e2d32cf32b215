package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	web "plusultra/internal/adapters/http"
	"plusultra/internal/adapters/pagesession"
	"plusultra/internal/config"
)

// version is set at build time via -ldflags "-X plusultra/internal/cli.version=..."
var version = "dev"

const (
	sessionSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the studio web site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config) error {
	key, err := cfg.CSRFKeyBytes()
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.Options{
		Sessions:           pagesession.NewStore(cfg.Sessions.TTL, cfg.Sessions.Max),
		RateLimitPerSecond: cfg.Security.RateLimitPerSecond,
		CSRFKey:            key,
		SecureCookies:      cfg.IsProduction(),
		TrustedOrigins:     cfg.Security.TrustedOrigins,
		SlowRequestMs:      cfg.Server.SlowRequestMs,
		FreeGenerations:    cfg.Workouts.FreeGenerations,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	go srv.Sessions().Run(ctx, sessionSweepInterval)
	go srv.Limiter().Run(ctx)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Server.Addr, "env", cfg.Env)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
