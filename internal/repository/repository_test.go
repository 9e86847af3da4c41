package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/quiet-spots-go/internal/database"
	"github.com/jengzang/quiet-spots-go/internal/models"
)

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Spots: []models.Spot{
			{Name: "Shrine A", City: "Kyoto", Latitude: 35.01, Longitude: 135.76, HasLocation: true, Alternative: "Shrine B"},
			{Name: "Shrine B", City: "Kyoto"},
		},
		Congestion: []models.CongestionSample{
			{SpotName: "Shrine A", TimeSlot: "12:00", Score: 90},
			{SpotName: "Shrine B", TimeSlot: "12:00", Score: 10},
			{SpotName: "Shrine A", TimeSlot: "09:00", Score: 40},
		},
		HasScore: true,
	}
}

func TestDatasetRepository_ReplaceAndLoad(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "spots.db")})
	require.NoError(t, err)
	defer db.Close()

	repo := NewDatasetRepository(db)
	ctx := context.Background()

	_, err = repo.Load(ctx)
	require.Error(t, err, "nothing imported yet")

	want := sampleDataset()
	require.NoError(t, repo.Replace(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Spots, got.Spots)
	assert.Equal(t, want.Congestion, got.Congestion)
	assert.True(t, got.HasScore)
	assert.NotZero(t, got.LoadedAt)

	// a second import replaces rather than appends
	smaller := sampleDataset()
	smaller.Spots = smaller.Spots[:1]
	smaller.HasScore = false
	require.NoError(t, repo.Replace(ctx, smaller))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Spots, 1)
	assert.False(t, got.HasScore)
}

func TestDatasetRepository_BlankScoreStoredAsNull(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "spots.db")})
	require.NoError(t, err)
	defer db.Close()

	repo := NewDatasetRepository(db)
	ctx := context.Background()

	want := sampleDataset()
	want.Congestion[1] = models.CongestionSample{SpotName: "Shrine B", TimeSlot: "12:00", Missing: true}
	require.NoError(t, repo.Replace(ctx, want))

	var nulls int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM congestion WHERE score IS NULL").Scan(&nulls))
	assert.Equal(t, 1, nulls)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Congestion, got.Congestion)
}

func TestCSVSource_Load(t *testing.T) {
	dir := t.TempDir()
	spotsPath := filepath.Join(dir, "spots.csv")
	congestionPath := filepath.Join(dir, "congestion.csv")
	require.NoError(t, os.WriteFile(spotsPath, []byte("スポット名,都市名,緯度,経度,代替スポット\nShrine A,Kyoto,35.0,135.7,Shrine B\n"), 0o644))
	require.NoError(t, os.WriteFile(congestionPath, []byte("スポット名,時間帯,混雑度（0〜100）\nShrine A,12:00,30\n"), 0o644))

	ds, err := NewCSVSource(spotsPath, congestionPath).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Spots, 1)
	assert.Len(t, ds.Congestion, 1)
	assert.True(t, ds.HasScore)
}
