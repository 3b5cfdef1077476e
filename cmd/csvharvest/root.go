package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/csvharvest/pkg/config"
	"github.com/walteh/csvharvest/pkg/log"
	"github.com/walteh/csvharvest/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	roots         []string
	outputDir     string
	windowDays    int
	progressEvery int
	strict        bool
	debug         bool
)

// newRootCmd builds the csvharvest command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csvharvest",
		Short: "Collect recent CSV backups into a deduplicated archive",
		Long: `csvharvest recursively discovers backup directories under a set of root
folders, filters their CSV files by modification recency, and copies them
into an output directory. Files whose name (case-insensitively) collides
with one already archived go to the duplicates subdirectory instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	addRootFlags(cmd)
	return cmd
}

// addRootFlags adds the run flags to the root command.
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&roots, "root", "r", config.DefaultRoots, "root folder to scan (repeatable)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "output folder for unique files")
	cmd.Flags().IntVarP(&windowDays, "window-days", "w", config.DefaultWindowDays, "only copy files modified within this many days")
	cmd.Flags().IntVar(&progressEvery, "progress-every", config.DefaultProgressEvery, "emit a progress notification every N processed files")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any individual copy failed")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}

// run executes one harvest.
func run(cmd *cobra.Command, _ []string) error {
	setupLogging()
	ctx := cmd.Context()

	cfg := config.New()
	cfg.Roots = roots
	cfg.OutputDir = outputDir
	cfg.WindowDays = windowDays
	cfg.ProgressEvery = progressEvery
	cfg.Strict = strict

	logger, err := log.Open(ctx, os.Stdout, time.Now())
	if err != nil {
		return errors.Errorf("opening run log: %w", err)
	}
	defer logger.Close()

	harvest, err := operation.New(operation.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return errors.Errorf("creating harvest operation: %w", err)
	}

	if err := harvest.Execute(ctx); err != nil {
		return errors.Errorf("running harvest: %w", err)
	}

	if cfg.Strict && harvest.CopyFailures() > 0 {
		return errors.Errorf("%d file(s) failed to copy", harvest.CopyFailures())
	}
	return nil
}
