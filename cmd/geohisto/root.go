package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/etalab/geohisto/pkg/actions"
	"github.com/etalab/geohisto/pkg/dispatch"
	"github.com/etalab/geohisto/pkg/loader"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/town"
)

var (
	townsPath   string
	historyPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "geohisto",
	Short: "Rebuild and query the bitemporal history of French communes",
	Long: `geohisto replays a log of legal modifications (fusions, splits,
renames, county transfers...) over a seed roster of communes and
reconstructs every identity's full validity history.

Examples:
  geohisto build --towns france2017.csv --history historiq2017.csv
  geohisto at 68240 2016-06-01 --towns france2017.csv --history historiq2017.csv
  geohisto trace 10263 --towns france2017.csv --history historiq2017.csv`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&townsPath, "towns", "", "path to the tab-delimited seed roster (required)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "path to the tab-delimited modification log (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each dispatched modification")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(traceCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildCollection loads the configured roster and history files and
// replays the log in full, returning the final deterministic version
// list alongside the live collection (trace and at reuse the latter
// for id lookups the sorted slice doesn't serve directly).
func buildCollection(logger zerolog.Logger) (*registry.Collection, []town.Version, error) {
	if townsPath == "" || historyPath == "" {
		return nil, nil, fmt.Errorf("--towns and --history are both required")
	}

	townsFile, err := os.Open(townsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening towns roster: %w", err)
	}
	defer townsFile.Close()

	collection, err := loader.LoadTowns(townsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading towns roster: %w", err)
	}

	historyFile, err := os.Open(historyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history log: %w", err)
	}
	defer historyFile.Close()

	records, err := loader.LoadHistory(historyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading history log: %w", err)
	}

	d := dispatch.New(logger)
	actions.RegisterAll(d)

	sorted, err := d.Run(collection, records)
	if err != nil {
		return nil, nil, fmt.Errorf("replaying history: %w", err)
	}
	return collection, sorted, nil
}
