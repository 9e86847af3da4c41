package loader

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// LoadSpots reads and decodes the spots file.
func LoadSpots(path string) ([]models.Spot, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return DecodeSpots(t)
}

// LoadCongestion reads the congestion file, canonicalizes its score header and decodes it.
func LoadCongestion(path string) ([]models.CongestionSample, bool, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, false, err
	}
	return DecodeCongestion(NormalizeCongestionHeader(t))
}

// LoadDataset reads both files concurrently and assembles an immutable Dataset.
func LoadDataset(ctx context.Context, spotsPath, congestionPath string) (*models.Dataset, error) {
	var (
		spots    []models.Spot
		samples  []models.CongestionSample
		hasScore bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		spots, err = LoadSpots(spotsPath)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		samples, hasScore, err = LoadCongestion(congestionPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("dataset loaded",
		zap.String("spots_path", spotsPath),
		zap.String("congestion_path", congestionPath),
		zap.Int("spots", len(spots)),
		zap.Int("samples", len(samples)),
		zap.Bool("has_score", hasScore),
	)

	return &models.Dataset{
		Spots:      spots,
		Congestion: samples,
		HasScore:   hasScore,
		LoadedAt:   time.Now().Unix(),
	}, nil
}
