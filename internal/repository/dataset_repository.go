package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jengzang/quiet-spots-go/internal/database"
	"github.com/jengzang/quiet-spots-go/internal/models"
)

// DatasetRepository handles database operations for the imported dataset
type DatasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Load reads the imported dataset in original file order
func (r *DatasetRepository) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	var hasScore int
	err := r.db.QueryRowContext(ctx, "SELECT has_score, imported_at FROM dataset_meta WHERE id = 1").
		Scan(&hasScore, &ds.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("repository: no dataset imported yet")
	}
	if err != nil {
		return nil, eris.Wrap(err, "repository: read dataset meta")
	}
	ds.HasScore = hasScore == 1

	spots, err := r.getSpots(ctx)
	if err != nil {
		return nil, err
	}
	ds.Spots = spots

	samples, err := r.getCongestion(ctx)
	if err != nil {
		return nil, err
	}
	ds.Congestion = samples

	return ds, nil
}

func (r *DatasetRepository) getSpots(ctx context.Context) ([]models.Spot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, city, latitude, longitude, has_location, alternative
		FROM spots ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "repository: query spots")
	}
	defer rows.Close()

	var spots []models.Spot
	for rows.Next() {
		var s models.Spot
		if err := rows.Scan(&s.Name, &s.City, &s.Latitude, &s.Longitude, &s.HasLocation, &s.Alternative); err != nil {
			return nil, eris.Wrap(err, "repository: scan spot")
		}
		spots = append(spots, s)
	}

	return spots, rows.Err()
}

func (r *DatasetRepository) getCongestion(ctx context.Context) ([]models.CongestionSample, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT spot_name, time_slot, score FROM congestion ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "repository: query congestion")
	}
	defer rows.Close()

	var samples []models.CongestionSample
	for rows.Next() {
		var c models.CongestionSample
		var score sql.NullFloat64
		if err := rows.Scan(&c.SpotName, &c.TimeSlot, &score); err != nil {
			return nil, eris.Wrap(err, "repository: scan congestion sample")
		}
		c.Score = score.Float64
		c.Missing = !score.Valid
		samples = append(samples, c)
	}

	return samples, rows.Err()
}

// Replace swaps the stored dataset for ds in one transaction
func (r *DatasetRepository) Replace(ctx context.Context, ds *models.Dataset) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM spots", "DELETE FROM congestion", "DELETE FROM dataset_meta"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return eris.Wrapf(err, "repository: %s", stmt)
			}
		}

		spotStmt, err := tx.PrepareContext(ctx, `INSERT INTO spots
			(position, name, city, latitude, longitude, has_location, alternative)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return eris.Wrap(err, "repository: prepare spot insert")
		}
		defer spotStmt.Close()

		for i, s := range ds.Spots {
			if _, err := spotStmt.ExecContext(ctx, i, s.Name, s.City, s.Latitude, s.Longitude, s.HasLocation, s.Alternative); err != nil {
				return eris.Wrapf(err, "repository: insert spot %q", s.Name)
			}
		}

		sampleStmt, err := tx.PrepareContext(ctx, `INSERT INTO congestion
			(position, spot_name, time_slot, score) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return eris.Wrap(err, "repository: prepare congestion insert")
		}
		defer sampleStmt.Close()

		for i, c := range ds.Congestion {
			var score interface{} = c.Score
			if c.Missing {
				score = nil
			}
			if _, err := sampleStmt.ExecContext(ctx, i, c.SpotName, c.TimeSlot, score); err != nil {
				return eris.Wrapf(err, "repository: insert congestion for %q", c.SpotName)
			}
		}

		hasScore := 0
		if ds.HasScore {
			hasScore = 1
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO dataset_meta (id, has_score, imported_at) VALUES (1, ?, ?)",
			hasScore, time.Now().Unix()); err != nil {
			return eris.Wrap(err, "repository: insert dataset meta")
		}

		return nil
	})
}
