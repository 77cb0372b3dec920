package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/logger"
	"github.com/pfrederiksen/referee-stats/internal/notifier"
	"github.com/pfrederiksen/referee-stats/internal/region"
	"github.com/pfrederiksen/referee-stats/internal/storage"
	"github.com/pfrederiksen/referee-stats/internal/strictness"
)

var (
	flagScrapeLeague    string
	flagScrapeSeason    string
	flagAggregateLeague string
	flagNationalLeague  string
	flagOutput          string
	flagSort            string
	flagTop             int
	flagDryRun          bool
	flagChannel         string
	flagPlot            bool
)

// newNotifier creates the publisher used by the publish command
func newNotifier(e *env, channel string, dryRun bool) (notifier.Notifier, error) {
	if dryRun {
		return notifier.NewDryRunNotifier(e.out), nil
	}
	switch channel {
	case "twitter":
		return notifier.NewTwitterNotifier()
	case "telegram":
		return notifier.NewTelegramNotifier()
	default:
		return nil, fmt.Errorf("unknown channel: %s (must be 'twitter' or 'telegram')", channel)
	}
}

func newScrapeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch referee tables and write one CSV per league and season",
		RunE: func(cmd *cobra.Command, args []string) error {
			leagues, err := league.Select(flagScrapeLeague)
			if err != nil {
				return err
			}
			seasons, err := league.SelectSeasons(flagScrapeSeason)
			if err != nil {
				return err
			}

			reports, err := e.scrape(cmd.Context(), leagues, seasons)
			if werr := WriteFiles(e.out, reports, e.format); werr != nil && err == nil {
				err = fmt.Errorf("writing output: %w", werr)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&flagScrapeLeague, "league", "all", "League (champions, europa, conference) or 'all'")
	cmd.Flags().StringVar(&flagScrapeSeason, "season", "all", "Season start year (e.g., 2023) or 'all'")
	return cmd
}

func newAggregateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Sum each referee's seasons into career totals per league",
		RunE: func(cmd *cobra.Command, args []string) error {
			leagues, err := league.Select(flagAggregateLeague)
			if err != nil {
				return err
			}
			reports, err := e.aggregate(leagues)
			if werr := WriteFiles(e.out, reports, e.format); werr != nil && err == nil {
				err = fmt.Errorf("writing output: %w", werr)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&flagAggregateLeague, "league", "all", "League (champions, europa, conference) or 'all'")
	return cmd
}

func newCombineCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "combine",
		Short: "Union the three league totals into one file tagged by league",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := e.combine()
			if err != nil {
				return err
			}
			return WriteFiles(e.out, []FileReport{report}, e.format)
		},
	}
}

func newRegionsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Roll the combined dataset up by region",
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := ParseSortField(flagSort)
			if err != nil {
				return err
			}

			result, err := e.rollup()
			if err != nil {
				return err
			}

			if flagOutput != "" {
				if err := storage.WriteRegions(flagOutput, result.Aggregates); err != nil {
					return err
				}
				e.metrics.FilesWritten.WithLabelValues(stageRegions).Inc()
				e.metrics.RowsWritten.WithLabelValues(stageRegions).Add(float64(len(result.Aggregates)))
				e.log.Info("saved region rollup", logger.Fields{"path": flagOutput})
			}

			sortRegions(result.Aggregates, order)
			return WriteRegions(e.out, result, e.format)
		},
	}
	cmd.Flags().StringVar(&flagOutput, "output", "", "Also write the rollup as CSV to this path")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort by a numeric field, descending (e.g., yc_per_appearance)")
	return cmd
}

func newNationalitiesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nationalities",
		Short: "Rank nationalities by yellow cards per appearance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected *league.League
			if flagNationalLeague != "" {
				l, err := league.Parse(flagNationalLeague)
				if err != nil {
					return err
				}
				selected = &l
			}

			records, err := e.loadRecords(selected)
			if err != nil {
				return err
			}
			return WriteNationalities(e.out, region.ByNationality(records, e.regions), e.format)
		},
	}
	cmd.Flags().StringVar(&flagNationalLeague, "league", "", "Use one league's totals instead of the combined file")
	return cmd
}

func newRefereesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referees",
		Short: "List referees with the most cards and their strictness index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagTop < 0 {
				return fmt.Errorf("--top must not be negative")
			}
			records, err := e.store.LoadCombined()
			if err != nil {
				return err
			}
			refs := strictness.Top(strictness.Compute(records, strictness.DefaultWeights), flagTop)
			return WriteReferees(e.out, refs, e.format)
		},
	}
	cmd.Flags().IntVar(&flagTop, "top", 10, "Number of referees to list (0 for all)")
	return cmd
}

func newPlotCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "plot",
		Short: "Render region rate charts as PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := e.rollup()
			if err != nil {
				return err
			}
			paths, err := e.plot(result.Aggregates)
			if err != nil {
				return err
			}
			return WritePaths(e.out, paths, e.format)
		},
	}
}

func newPublishCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Post a short region summary to Twitter or Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := e.rollup()
			if err != nil {
				return err
			}

			n, err := newNotifier(e, flagChannel, flagDryRun)
			if err != nil {
				return fmt.Errorf("initializing notifier: %w", err)
			}
			if err := n.Notify(result.Aggregates); err != nil {
				return err
			}
			if !flagDryRun {
				e.log.Info("published region summary", logger.Fields{
					"channel": flagChannel,
					"regions": len(result.Aggregates),
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagChannel, "channel", "twitter", "Where to post: twitter or telegram")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the status without posting")
	return cmd
}

func newRunCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run aggregate, combine and regions in sequence",
		Long: `Run the offline pipeline over the CSV files already in the data directory:
aggregate every league, combine them, and roll the result up by region.
With --plot the region charts are rendered as well. Nothing is scraped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := &RunSummary{
				RunID:     uuid.NewString(),
				StartedAt: clock.Now().UTC(),
				KeyMode:   string(e.keyMode),
			}
			e.log.Info("pipeline started", logger.Fields{"run_id": summary.RunID})

			totals, err := e.aggregate(league.All)
			if err != nil {
				return err
			}
			summary.Files = append(summary.Files, totals...)

			combined, err := e.combine()
			if err != nil {
				return err
			}
			summary.Files = append(summary.Files, combined)

			result, err := e.rollup()
			if err != nil {
				return err
			}
			summary.Regions = result

			if flagPlot {
				paths, err := e.plot(result.Aggregates)
				if err != nil {
					return err
				}
				summary.Charts = paths
			}

			summary.FinishedAt = clock.Now().UTC()
			e.log.Info("pipeline finished", logger.Fields{
				"run_id":   summary.RunID,
				"duration": summary.FinishedAt.Sub(summary.StartedAt).String(),
			})
			return WriteRunSummary(e.out, summary, e.format)
		},
	}
	cmd.Flags().BoolVar(&flagPlot, "plot", false, "Also render the region charts")
	return cmd
}
