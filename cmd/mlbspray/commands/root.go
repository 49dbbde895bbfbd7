// Package commands implements the mlbspray command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/mlbspray/internal/build"
	"github.com/okian/mlbspray/internal/config"
	"github.com/okian/mlbspray/pkg/logger"
	"github.com/okian/mlbspray/pkg/metrics"
)

// CLI represents the command line interface for mlbspray.
type CLI struct {
	cfg     *config.Config
	rootCmd *cobra.Command
	logger  logger.Logger
}

// New creates a CLI over a loaded configuration. Flags override cfg for the
// command being run; cfg itself is never modified.
func New(cfg *config.Config) *CLI {
	if cfg == nil {
		cfg = config.New()
	}
	rootCmd := &cobra.Command{
		Use:           "mlbspray",
		Short:         "Cache MLB play-by-play data and compile batted-ball spray tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		cfg:     cfg,
		rootCmd: rootCmd,
		logger:  logger.Named("cli"),
	}

	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// writeMetrics dumps the metrics registry when a textfile path is configured.
// A failed dump is logged and never fails the command.
func (c *CLI) writeMetrics(ctx context.Context) {
	if c.cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
		c.logger.Warn(ctx, "metrics textfile not written",
			logger.String("path", c.cfg.MetricsFile), logger.Error(err))
	}
}
