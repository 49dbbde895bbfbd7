// Package main is the entry point for the mlbspray command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/mlbspray/cmd/mlbspray/commands"
	"github.com/okian/mlbspray/internal/config"
	"github.com/okian/mlbspray/pkg/logger"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logger.InitWithOptions(logger.Options{Writer: stderr}); err != nil {
		// Logger is not available yet
		_, _ = fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return 1
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return 1
	}

	// Reinitialize with the configured format and level, falling back to
	// text/info on invalid input.
	if err := logger.InitWithOptions(logger.Options{
		Writer: stderr,
		Format: logger.Format(cfg.LogFormat),
		Level:  cfg.LogLevel,
	}); err != nil {
		_ = logger.InitWithOptions(logger.Options{Writer: stderr})
		logger.Get().Warn(ctx, "invalid logging config; falling back to text/info",
			logger.String("log_level", cfg.LogLevel),
			logger.String("log_format", cfg.LogFormat),
			logger.Error(err))
	}

	cli := commands.New(cfg)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		logger.Get().Error(ctx, "command failed", logger.Error(err))
		return 1
	}
	return 0
}
