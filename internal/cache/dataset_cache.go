// Package cache governs re-use of the loaded dataset between requests.
package cache

import (
	"context"
	"time"

	"github.com/bluele/gcache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jengzang/quiet-spots-go/internal/models"
	"github.com/jengzang/quiet-spots-go/internal/repository"
)

const datasetKey = "dataset"

// DatasetCache hands out the immutable dataset. With a zero TTL every Get reloads
// from the source; concurrent loads are collapsed into one either way.
type DatasetCache struct {
	source repository.DatasetSource
	ttl    time.Duration
	store  gcache.Cache // nil when ttl is zero
	group  singleflight.Group
}

// NewDatasetCache wraps source with an entry that expires after ttl.
func NewDatasetCache(source repository.DatasetSource, ttl time.Duration) *DatasetCache {
	c := &DatasetCache{source: source, ttl: ttl}
	if ttl > 0 {
		c.store = gcache.New(1).Expiration(ttl).Build()
	}
	return c
}

// Get returns the cached dataset or loads a fresh one. The shared load is detached
// from ctx so one caller going away does not fail the others; ctx only bounds how
// long this caller waits.
func (c *DatasetCache) Get(ctx context.Context) (*models.Dataset, error) {
	if c.store != nil {
		if v, err := c.store.Get(datasetKey); err == nil {
			return v.(*models.Dataset), nil
		}
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(datasetKey, func() (interface{}, error) {
		ds, err := c.source.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		if c.store != nil {
			if err := c.store.Set(datasetKey, ds); err != nil {
				zap.L().Warn("dataset cache set failed", zap.Error(err))
			}
		}
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			zap.L().Debug("dataset load shared between concurrent requests")
		}
		return res.Val.(*models.Dataset), nil
	}
}

// Invalidate drops the cached entry so the next Get reloads.
func (c *DatasetCache) Invalidate() {
	if c.store != nil {
		c.store.Remove(datasetKey)
	}
}

// TTL reports the configured expiration.
func (c *DatasetCache) TTL() time.Duration {
	return c.ttl
}
