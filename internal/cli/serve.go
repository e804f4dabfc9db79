package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/db"
	"github.com/kidandcat/diametrics/internal/handlers"
	"github.com/kidandcat/diametrics/internal/inference"
	"github.com/kidandcat/diametrics/internal/observability"
	"github.com/kidandcat/diametrics/internal/openfoodfacts"
	"github.com/kidandcat/diametrics/internal/state"
	"github.com/kidandcat/diametrics/internal/view"
)

const purgeInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := db.Init(cfg.DataDir); err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer db.Close()

		renderer, err := view.NewRenderer(log)
		if err != nil {
			return err
		}
		sessions := state.NewSessions()
		h := handlers.New(handlers.Deps{
			Config:    cfg,
			Logger:    log,
			API:       api.New(cfg.APIURL, cfg.HTTPTimeout, log),
			Inference: inference.New(cfg.InferenceURL, cfg.HTTPTimeout, log),
			Products:  openfoodfacts.New(cfg.ProductsURL, cfg.HTTPTimeout, log),
			Renderer:  renderer,
			Sessions:  sessions,
		})

		mux := http.NewServeMux()
		h.RegisterRoutes(mux)
		mux.Handle("GET /metrics", observability.Handler())

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handlers.Middleware(log, mux),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      2 * time.Minute,
			IdleTimeout:       2 * time.Minute,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go purgeSessions(ctx, sessions, log)

		errCh := make(chan error, 1)
		go func() {
			log.Info("diametrics listening", zap.String("addr", cfg.Addr), zap.String("api", cfg.APIURL))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// purgeSessions removes expired cookie sessions, and the stores they owned,
// until ctx ends.
func purgeSessions(ctx context.Context, sessions *state.Sessions, log *zap.Logger) {
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			sweepSessions(now, sessions, log)
		}
	}
}

func sweepSessions(now time.Time, sessions *state.Sessions, log *zap.Logger) {
	n, err := db.PurgeExpired(now)
	if err != nil {
		log.Warn("purge sessions", zap.Error(err))
		return
	}
	dropped := sessions.Retain(func(token string) bool {
		_, err := db.GetSession(token)
		return !errors.Is(err, db.ErrNoSession)
	})
	if n > 0 || dropped > 0 {
		log.Info("purged expired sessions", zap.Int64("count", n), zap.Int("stores", dropped))
	}
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
