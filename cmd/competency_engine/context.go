package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/competency"
	"github.com/shemaobt/translation-helper-sub001/internal/config"
	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/logging"
	"github.com/shemaobt/translation-helper-sub001/internal/rules"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	rulesPath  string
}

// commandContext lazily resolves what the subcommands share
type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	configErr  error

	engineOnce sync.Once
	engine     *competency.Engine
	engineErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig layers the command-line flags over file, environment and defaults
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Resolve(c.flags.configPath)
		if err != nil {
			c.configErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if c.flags.logLevel != "" {
			cfg.LogLevel = c.flags.logLevel
		}
		if c.flags.logFormat != "" {
			cfg.LogFormat = c.flags.logFormat
		}
		if c.flags.rulesPath != "" {
			cfg.RulesPath = c.flags.rulesPath
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so stdout carries only results
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) ensureEngine() (*competency.Engine, error) {
	c.engineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.engineErr = err
			return
		}
		rs, err := rules.Load(cfg.RulesPath)
		if err != nil {
			c.engineErr = err
			return
		}
		c.engine = competency.New(rs)
	})
	return c.engine, c.engineErr
}

// withDB connects, applies the schema and runs fn
func (c *commandContext) withDB(ctx context.Context, fn func(*db.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set (set DATABASE_URL or database_url in the config file)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	return fn(database)
}
