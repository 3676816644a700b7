package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/urfave/cli/v3"
)

// loadAppConfig loads configuration from the optional file and the
// environment, applies any flags given on the command line, and validates
// the result.
func loadAppConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.ReadFile(cmd.String(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.IsSet(flagPort) {
		cfg.Server.Port = cmd.Int(flagPort)
	}
	if cmd.IsSet(flagLogLevel) {
		cfg.Server.LogLevel = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagAllowedOrigin) {
		cfg.CORS.AllowedOrigin = cmd.String(flagAllowedOrigin)
	}
	if cmd.IsSet(flagBackendURL) {
		cfg.Client.BackendURL = cmd.String(flagBackendURL)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupAppLogger configures the process-wide logger from cfg.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"allowed_origin", cfg.CORS.AllowedOrigin,
		"backend_url", cfg.Client.BackendURL)

	return l, nil
}
