package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/mlbspray/internal/adapters/cache"
	"github.com/okian/mlbspray/internal/adapters/schedule"
	"github.com/okian/mlbspray/internal/adapters/statsapi"
	service "github.com/okian/mlbspray/internal/app"
	"github.com/okian/mlbspray/internal/config"
)

// progressEvery is how many games pass between progress log lines.
const progressEvery = 25

func (c *CLI) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and cache play-by-play documents for every game in a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedulePath, _ := cmd.Flags().GetString("schedule")
			force, _ := cmd.Flags().GetBool("force")

			delay := c.cfg.RateLimitDelay()
			if cmd.Flags().Changed("delay") {
				delay, _ = cmd.Flags().GetDuration("delay")
				if delay < 0 {
					return fmt.Errorf("%w: --delay must not be negative", config.ErrInvalidConfig)
				}
			}
			cacheDir := c.cfg.CacheDir
			if cmd.Flags().Changed("cache-dir") {
				cacheDir, _ = cmd.Flags().GetString("cache-dir")
			}

			return c.runFetch(cmd.Context(), cmd.OutOrStdout(), schedulePath, cacheDir, delay, force)
		},
	}
	cmd.Flags().StringP("schedule", "s", "", "Schedule CSV with game_pk, date, home_team, away_team, home_id and away_id columns")
	cmd.Flags().BoolP("force", "f", false, "Refetch games even when a valid cached artifact exists")
	cmd.Flags().Duration("delay", 0, "Pause after each successful fetch (default from rate_limit_delay_ms)")
	cmd.Flags().String("cache-dir", "", "Cache root directory (default from cache_dir)")
	_ = cmd.MarkFlagRequired("schedule")
	return cmd
}

func (c *CLI) runFetch(ctx context.Context, out io.Writer, schedulePath, cacheDir string, delay time.Duration, force bool) error {
	games, err := schedule.NewReader(schedule.WithLogger(c.logger.Named("schedule"))).ReadFile(ctx, schedulePath)
	if err != nil {
		return err
	}

	client := statsapi.New(
		statsapi.WithBaseURL(c.cfg.APIBaseURL),
		statsapi.WithUserAgent(c.cfg.UserAgent),
		statsapi.WithTimeout(c.cfg.HTTPTimeout()),
		statsapi.WithMaxBodyBytes(c.cfg.MaxBodyBytes),
		statsapi.WithLogger(c.logger.Named("statsapi")),
	)
	svc := service.New(c.newStore(cacheDir),
		service.WithSource(client),
		service.WithObserver(service.LogObserver{Logger: c.logger.Named("progress"), Every: progressEvery}),
		service.WithRateLimitDelay(delay),
		service.WithMinContentSize(c.cfg.MinContentBytes),
		service.WithLogger(c.logger.Named("service")),
	)

	stats, err := svc.Fetch(ctx, games, service.FetchOptions{ForceRefresh: force})
	c.writeMetrics(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%d games: %d cached, %d skipped, %d failed, %d invalid\n",
		stats.Total, stats.Cached, stats.Skipped, stats.Failed, stats.Invalid)
	return nil
}

func (c *CLI) newStore(root string) *cache.FileStore {
	validation := cache.ValidateSize
	if strings.EqualFold(c.cfg.CacheValidation, config.ValidationContent) {
		validation = cache.ValidateContent
	}
	return cache.NewFileStore(root,
		cache.WithMinValidSize(c.cfg.MinValidCacheBytes),
		cache.WithValidation(validation),
		cache.WithLogger(c.logger.Named("cache")),
	)
}
