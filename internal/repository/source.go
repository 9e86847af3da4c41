package repository

import (
	"context"

	"github.com/jengzang/quiet-spots-go/internal/loader"
	"github.com/jengzang/quiet-spots-go/internal/models"
)

// DatasetSource produces a freshly loaded dataset on every call
type DatasetSource interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// CSVSource reads the spot and congestion CSV files
type CSVSource struct {
	SpotsPath      string
	CongestionPath string
}

// NewCSVSource creates a CSV-backed dataset source
func NewCSVSource(spotsPath, congestionPath string) *CSVSource {
	return &CSVSource{SpotsPath: spotsPath, CongestionPath: congestionPath}
}

// Load re-reads both files
func (s *CSVSource) Load(ctx context.Context) (*models.Dataset, error) {
	return loader.LoadDataset(ctx, s.SpotsPath, s.CongestionPath)
}
