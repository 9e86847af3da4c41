package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/quiet-spots-go/internal/config"
	"github.com/jengzang/quiet-spots-go/internal/repository"
)

var (
	cfg     *config.Config
	cfgFile string
)

// flags that override config keys when given on the executed command
var flagKeys = map[string]string{
	"source":     "data.source",
	"spots":      "data.spots_path",
	"congestion": "data.congestion_path",
	"db":         "data.db_path",
	"slot":       "recommend.slot",
	"log-level":  "log.level",
}

var rootCmd = &cobra.Command{
	Use:           "spotctl",
	Short:         "Manage and query the quiet spots dataset",
	Long:          "Imports the spot and congestion CSV files into SQLite and answers recommendation, weather and spot lookups from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		opts := make([]config.Option, 0, len(flagKeys))
		for name, key := range flagKeys {
			opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
		}

		c, err := config.Load(cfgFile, opts...)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(spotsCmd)
}

// addSourceFlags registers the flags that pick where the dataset is read from
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "dataset source: csv or sqlite")
	cmd.Flags().String("spots", "", "path to the spots CSV file")
	cmd.Flags().String("congestion", "", "path to the congestion CSV file")
	cmd.Flags().String("db", "", "path to the SQLite database")
}

// openSource returns the configured dataset source and a func releasing it
func openSource() (repository.DatasetSource, func(), error) {
	if cfg.Data.Source == config.SourceSQLite {
		db, err := openDB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewDatasetRepository(db), func() { _ = db.Close() }, nil
	}
	return repository.NewCSVSource(cfg.Data.SpotsPath, cfg.Data.CongestionPath), func() {}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
