package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/fairpath/internal/logger"
)

// ErrUnavailable wraps every provider failure surfaced by Cache
var ErrUnavailable = errors.New("catalog unavailable")

// Cache memoizes the catalog from a Provider.
//
// The first Get builds the snapshot exactly once even under concurrent callers;
// later reads are a single atomic load. A failed build is not memoized, so the
// next Get retries. Reload swaps in a new snapshot without disturbing readers.
type Cache struct {
	provider Provider
	logger   *zap.Logger

	group    singleflight.Group
	current  atomic.Pointer[Catalog]
	loadedAt atomic.Int64
}

// NewCache returns an empty cache over provider.
func NewCache(provider Provider, log *zap.Logger) *Cache {
	return &Cache{provider: provider, logger: logger.OrNop(log)}
}

// Get returns the cached catalog, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	if cat := c.current.Load(); cat != nil {
		return cat, nil
	}

	v, err, _ := c.group.Do("load", func() (any, error) {
		if cat := c.current.Load(); cat != nil {
			return cat, nil
		}
		return c.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Reload rebuilds the snapshot from the provider. On failure the previous
// snapshot, if any, stays in place.
func (c *Cache) Reload(ctx context.Context) (*Catalog, error) {
	v, err, _ := c.group.Do("reload", func() (any, error) {
		return c.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Peek returns the current snapshot without loading, or nil.
func (c *Cache) Peek() *Catalog {
	return c.current.Load()
}

// Loaded reports whether a snapshot is available.
func (c *Cache) Loaded() bool {
	return c.current.Load() != nil
}

// LoadedAt returns when the current snapshot was built, or the zero time.
func (c *Cache) LoadedAt() time.Time {
	ns := c.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (c *Cache) load(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	cat, err := c.provider.Load(ctx)
	if err != nil {
		c.logger.Error("catalog load failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c.current.Store(cat)
	c.loadedAt.Store(time.Now().UnixNano())
	c.logger.Info("catalog loaded",
		zap.String("version", cat.Version),
		zap.Int("skills", len(cat.SkillNames)),
		zap.Int("occupations", cat.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cat, nil
}
