package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/phrazzld/todo-api/internal/client"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/urfave/cli/v3"
)

// Flag names shared by the commands and config loading.
const (
	flagConfig        = "config"
	flagPort          = "port"
	flagLogLevel      = "log-level"
	flagAllowedOrigin = "allowed-origin"
	flagBackendURL    = "backend-url"
	flagURL           = "url"
	flagTimeout       = "timeout"
)

// newRootCommand returns the top-level CLI command. Without a subcommand
// it serves.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:           "todo-server",
		Usage:          "Serve the todo API and browser client",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			newServeCommand(),
			newHealthcheckCommand(),
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: ./config.yaml if present)",
			},
			&cli.IntFlag{
				Name:  flagPort,
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "Log level: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  flagAllowedOrigin,
				Usage: "Origin allowed to call the API from a browser, or *",
			},
			&cli.StringFlag{
				Name:  flagBackendURL,
				Usage: "API address handed to the browser client",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}

	return app.startHTTPServer(ctx, ln)
}

func newHealthcheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "healthcheck",
		Usage: "Check a running server's /health endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagURL,
				Usage: "Base URL of the server",
				Value: fmt.Sprintf("http://localhost:%d", config.DefaultPort),
			},
			&cli.DurationFlag{
				Name:  flagTimeout,
				Usage: "How long to wait for a response",
				Value: 5 * time.Second,
			},
		},
		Action: runHealthcheck,
	}
}

func runHealthcheck(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithTimeout(ctx, cmd.Duration(flagTimeout))
	defer cancel()

	health, err := client.New(cmd.String(flagURL)).Health(ctx)
	if err != nil {
		return fmt.Errorf("healthcheck failed: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("healthcheck failed: status %q", health.Status)
	}

	_, _ = fmt.Fprintln(cmd.Root().Writer, health.Status)
	return nil
}
