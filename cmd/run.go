package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/app"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/config"
	"github.com/bytetechedu/bytetech/internal/logging"
	"github.com/bytetechedu/bytetech/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := resolveConfig(cmd)

	logger, closeLog, err := logging.Open(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve cache path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer st.Close()

	session, err := auth.Restore(st)
	if err != nil {
		logger.Warn("session restore failed", zap.Error(err))
		session = auth.New(st)
	}

	client := buildClient(cfg, session, logger)

	return app.Run(&app.Deps{
		Client:  client,
		Session: session,
		Store:   st,
		Logger:  logger,
		Config:  cfg,
	})
}

// buildClient wires the API client with the session as token source.
func buildClient(cfg config.Config, session *auth.Session, logger *zap.Logger) *api.Client {
	return api.New(cfg.APIBase,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithTokenSource(session),
		api.WithLogger(logger),
		api.WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.InitialWait, cfg.Retry.MaxWait, cfg.Retry.Multiplier),
	)
}
