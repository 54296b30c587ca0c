package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/config"
	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/progress"
	"github.com/shemaobt/translation-helper-sub001/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server exposing public scoring and facilitator competency endpoints. Without DATABASE_URL records are kept in memory only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := buildServer(cmd, ctx, port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: config or 8080)")
	return cmd
}

// buildServer wires storage, scoring and auth into a server without starting it
func buildServer(cmd *cobra.Command, ctx *commandContext, port int) (*server.Server, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return nil, err
	}
	engine, err := ctx.ensureEngine()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	apiKeys, err := config.NewAPIKeyConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create API key config: %w", err)
	}

	var (
		store   progress.Store
		onClose func()
	)
	if cfg.DatabaseURL != "" {
		runCtx := cmdContext(cmd)
		database, err := db.Connect(runCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(runCtx); err != nil {
			database.Close()
			return nil, err
		}
		store = database
		onClose = database.Close
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		store = progress.NewMemoryStore()
	}

	if port == 0 {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:    port,
		Service: progress.NewService(store, engine, logger, cfg.MaxConcurrency),
		JWT:     jwtConfig,
		APIKeys: apiKeys,
		Logger:  logger,
		OnClose: onClose,
	})
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("server configured",
		slog.Int("port", port),
		slog.String("rules_version", engine.Rules().Version),
		slog.Bool("database", cfg.DatabaseURL != ""),
	)
	return srv, nil
}

// cmdContext returns the command's context, or Background when run outside Execute
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
