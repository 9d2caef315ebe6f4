package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joestump/prompt-library/internal/build"
	"github.com/joestump/prompt-library/internal/handler"
	"github.com/joestump/prompt-library/internal/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := loadEnv(ctx, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.presets != nil {
				if n, err := env.presets.Count(ctx); err == nil {
					metrics.PresetsTotal.Set(float64(n))
				}
			} else {
				env.logger.Warn("no database configured; preset routes disabled")
			}
			if env.cfg.API.Token == "" {
				env.logger.Warn("PROMPTLIB_API_TOKEN not set; API is unauthenticated")
			}

			router := handler.NewRouter(handler.Deps{
				Renderer: env.renderer(),
				Presets:  env.presetStore(),
				APIToken: env.cfg.API.Token,
				Logger:   env.logger,
			})

			srv := &http.Server{Addr: env.cfg.HTTP.Addr, Handler: router}
			errCh := make(chan error, 1)
			go func() {
				env.logger.Info("listening", "addr", env.cfg.HTTP.Addr, "version", build.Version)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			env.logger.Info("shutting down", "timeout", env.cfg.HTTP.ShutdownTimeout)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
