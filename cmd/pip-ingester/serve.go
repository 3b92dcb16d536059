package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipid/ingester/api"
	"github.com/pipid/ingester/engine"
	"github.com/pipid/ingester/ingest"
	"github.com/pipid/ingester/internal/logger"
	"github.com/pipid/ingester/normalize"
	"github.com/pipid/ingester/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ingestion pipeline over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, cfg, err := loadOptions()
		if err != nil {
			return err
		}

		log := logger.New(cfg.Logging.Level)

		deps := api.Deps{
			Ingester:   ingest.New(opts...),
			Validator:  engine.New(opts...),
			Normalizer: normalize.New(nil),
			Logger:     log,
		}

		if cfg.Cache.Enabled {
			st, err := store.Open(cfg.Cache.Path)
			if err != nil {
				return err
			}
			defer st.Close()
			deps.Cache = store.NewCachedIngester(deps.Ingester, st, cfg.CacheTTL())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: api.NewHandler(deps),
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("pip-ingester listening", "addr", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case <-ctx.Done():
			log.Info("shutting down")
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
