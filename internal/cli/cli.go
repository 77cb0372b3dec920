package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/referee-stats/internal/config"
	"github.com/pfrederiksen/referee-stats/internal/logger"
	"github.com/pfrederiksen/referee-stats/internal/observability"
	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
	"github.com/pfrederiksen/referee-stats/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagDataDir     string
	flagFormat      string
	flagKeyMode     string
	flagMetricsFile string
	flagVerbose     bool
)

// clock stamps run summaries and the metrics file; tests swap in a fake.
var clock clockwork.Clock = clockwork.NewRealClock()

// env is everything a command needs once flags and configuration are resolved.
type env struct {
	cfg     *config.Config
	store   *storage.Storage
	log     *logger.Logger
	metrics *observability.Metrics
	regions region.Map
	keyMode referee.KeyMode
	format  OutputFormat
	out     io.Writer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "refstats",
		Short: "Aggregate UEFA referee disciplinary statistics",
		Long: `A CLI tool to scrape, aggregate and summarize referee disciplinary statistics
(cards, penalties, appearances) across the Champions, Europa and Conference League.

Stages read and write CSV files under the data directory:
  scrape -> aggregate -> combine -> regions / plot / publish`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a YAML config file (default $REFSTATS_CONFIG)")
	pf.StringVar(&flagDataDir, "data-dir", "", "Dataset root directory (default public/datasets)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.StringVar(&flagKeyMode, "key-mode", "", "Career grouping key: name_nationality_age or name_nationality")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(e),
		newAggregateCmd(e),
		newCombineCmd(e),
		newRegionsCmd(e),
		newNationalitiesCmd(e),
		newRefereesCmd(e),
		newPlotCmd(e),
		newPublishCmd(e),
		newRunCmd(e),
	)

	// Cobra skips post-run hooks when RunE fails, and failed runs are the
	// ones whose metrics matter most.
	for _, sub := range cmd.Commands() {
		sub.RunE = e.withMetrics(sub.RunE)
	}

	return cmd
}

// withMetrics writes the metrics file after run returns, successful or not
func (e *env) withMetrics(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if werr := e.writeMetrics(); werr != nil {
				if err == nil {
					err = werr
				} else {
					e.log.Error("writing metrics failed", nil, werr)
				}
			}
		}()
		return run(cmd, args)
	}
}

// setup resolves configuration and flag overrides into e
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagKeyMode != "" {
		cfg.KeyMode = flagKeyMode
	}
	if flagMetricsFile != "" {
		cfg.MetricsFile = flagMetricsFile
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	keyMode, err := referee.ParseKeyMode(cfg.KeyMode)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFormat, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	regions, err := cfg.RegionMap()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	e.cfg = cfg
	e.store = store
	e.log = logger.New(level, cmd.ErrOrStderr(), logFormat)
	e.metrics = observability.NewMetrics()
	e.regions = regions
	e.keyMode = keyMode
	e.format = format
	e.out = cmd.OutOrStdout()
	logger.SetDefault(e.log)

	e.log.Debug("configuration loaded", logger.Fields{
		"data_dir": store.DataDir(),
		"key_mode": string(keyMode),
		"regions":  regions.Len(),
	})
	return nil
}

// writeMetrics writes the metrics textfile when one is configured
func (e *env) writeMetrics() error {
	if e.cfg == nil || e.cfg.MetricsFile == "" {
		return nil
	}
	path, err := storage.ExpandHome(e.cfg.MetricsFile)
	if err != nil {
		return err
	}
	if err := e.metrics.WriteTextfile(path, clock.Now()); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	e.log.Debug("metrics written", logger.Fields{"path": path})
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
