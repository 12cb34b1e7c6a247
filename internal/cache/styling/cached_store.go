package styling

import (
	"context"
	"strings"
	"time"

	memcache "chartsmith/internal/cache/memory"
	stylingrepo "chartsmith/internal/repository/styling"
	chartstyle "chartsmith/internal/styling"
)

type Store = stylingrepo.Store

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		MaxEntries: 2048,
	}
}

// CachedStore is the session cache of styling already pulled from
// storage: first Load per chart hits the origin, later mounts in the
// same session are served from memory. This cache sits at the top of
// the styling resolution order, above the snapshot bundled with the
// chart record. Saves write through so the cache never serves state
// older than the last local flush.
type CachedStore struct {
	origin Store
	cache  *memcache.LRUTTL[string, chartstyle.ChartStyling]
}

func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		cache:  memcache.NewLRUTTL[string, chartstyle.ChartStyling](cfg.MaxEntries, cfg.TTL),
	}
}

// Cached returns the session-cached styling for a chart without touching
// the origin. ok is false when this session has not loaded the chart yet.
func (s *CachedStore) Cached(chartID string) (chartstyle.ChartStyling, bool) {
	v, ok := s.cache.Get(strings.TrimSpace(chartID))
	if !ok {
		return chartstyle.ChartStyling{}, false
	}
	return v.Clone(), true
}

func (s *CachedStore) Load(ctx context.Context, chartID string) (chartstyle.ChartStyling, error) {
	key := strings.TrimSpace(chartID)
	if v, ok := s.cache.Get(key); ok {
		return v.Clone(), nil
	}
	v, err := s.origin.Load(ctx, key)
	if err != nil {
		return chartstyle.ChartStyling{}, err
	}
	s.cache.Set(key, v.Clone())
	return v, nil
}

func (s *CachedStore) SaveChart(ctx context.Context, chartID string, p chartstyle.Patch) error {
	key := strings.TrimSpace(chartID)
	if err := s.origin.SaveChart(ctx, key, p); err != nil {
		return err
	}
	if cur, ok := s.cache.Get(key); ok {
		next := cur.Clone()
		next.Apply(p)
		s.cache.Set(key, next)
	}
	return nil
}

func (s *CachedStore) SaveMessage(ctx context.Context, messageID string, p chartstyle.Patch) error {
	// Message stylings are not read back through this cache.
	return s.origin.SaveMessage(ctx, messageID, p)
}

// DeleteChart removes the persisted styling and drops the cache entry,
// so a deleted chart's appearance cannot be served or resurrected.
func (s *CachedStore) DeleteChart(ctx context.Context, chartID string) error {
	key := strings.TrimSpace(chartID)
	s.cache.Delete(key)
	return s.origin.DeleteChart(ctx, key)
}

// Invalidate drops a chart from the session cache; the next Load goes
// back to the origin.
func (s *CachedStore) Invalidate(chartID string) {
	s.cache.Delete(strings.TrimSpace(chartID))
}
