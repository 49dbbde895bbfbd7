package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/mlbspray/internal/adapters/export"
	service "github.com/okian/mlbspray/internal/app"
	"github.com/okian/mlbspray/internal/config"
	"github.com/okian/mlbspray/internal/domain/extract"
	"github.com/okian/mlbspray/internal/domain/geometry"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a season's cached games into a hit table CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			season, _ := cmd.Flags().GetInt("season")
			if season <= 0 {
				return fmt.Errorf("%w: --season must be a positive year", config.ErrInvalidConfig)
			}
			cacheDir := c.cfg.CacheDir
			if cmd.Flags().Changed("cache-dir") {
				cacheDir, _ = cmd.Flags().GetString("cache-dir")
			}
			outDir := c.cfg.OutputDir
			if cmd.Flags().Changed("out") {
				outDir, _ = cmd.Flags().GetString("out")
			}
			return c.runCompile(cmd.Context(), cmd.OutOrStdout(), season, cacheDir, outDir)
		},
	}
	cmd.Flags().Int("season", 0, "Season year to compile")
	cmd.Flags().String("cache-dir", "", "Cache root directory (default from cache_dir)")
	cmd.Flags().StringP("out", "o", "", "Output directory (default from output_dir)")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func (c *CLI) runCompile(ctx context.Context, out io.Writer, season int, cacheDir, outDir string) error {
	extractor, err := c.newExtractor()
	if err != nil {
		return err
	}
	svc := service.New(c.newStore(cacheDir),
		service.WithExtractor(extractor),
		service.WithMinContentSize(c.cfg.MinContentBytes),
		service.WithLogger(c.logger.Named("service")),
	)

	events, stats, err := svc.Compile(ctx, season)
	c.writeMetrics(ctx)
	if err != nil {
		return err
	}
	path, err := export.WriteFile(outDir, season, events)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%d hit events from %d of %d files written to %s\n",
		stats.Records, stats.Compiled, stats.Files, path)
	return nil
}

// newExtractor builds the extractor from the configured home plate and the
// optional sector table override.
func (c *CLI) newExtractor() (*extract.Extractor, error) {
	opts := []extract.Option{
		extract.WithReference(geometry.Point{X: c.cfg.HomePlateX, Y: c.cfg.HomePlateY}),
		extract.WithMinContentSize(int(c.cfg.MinContentBytes)),
		extract.WithLogger(c.logger.Named("extract")),
	}
	if len(c.cfg.SectorTable) > 0 {
		ranges := make([]geometry.Range, 0, len(c.cfg.SectorTable))
		for _, r := range c.cfg.SectorTable {
			ranges = append(ranges, geometry.Range{Label: r.Label, Min: r.Min, Max: r.Max})
		}
		table, err := geometry.NewRangeTable(ranges, geometry.Foul)
		if err != nil {
			return nil, fmt.Errorf("%w: sector_table: %w", config.ErrInvalidConfig, err)
		}
		opts = append(opts, extract.WithSectorTable(table))
	}
	return extract.New(opts...), nil
}
