package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/quiet-spots-go/internal/database"
	"github.com/jengzang/quiet-spots-go/internal/loader"
	"github.com/jengzang/quiet-spots-go/internal/repository"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV files into the SQLite database",
	Long:  "Reads the spot and congestion CSV files and replaces the dataset stored in the SQLite database in one transaction.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ds, err := loader.LoadDataset(ctx, cfg.Data.SpotsPath, cfg.Data.CongestionPath)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.NewDatasetRepository(db).Replace(ctx, ds); err != nil {
			return err
		}

		zap.L().Info("dataset imported",
			zap.String("db", cfg.Data.DBPath),
			zap.Int("spots", len(ds.Spots)),
			zap.Int("congestion", len(ds.Congestion)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d spots and %d congestion rows into %s\n",
			len(ds.Spots), len(ds.Congestion), cfg.Data.DBPath)
		return nil
	},
}

func init() {
	addSourceFlags(importCmd)
}

// openDB opens the configured SQLite database, creating its directory first
func openDB() (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Data.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "spotctl: create %s", dir)
		}
	}
	return database.Open(database.Config{Path: cfg.Data.DBPath})
}
