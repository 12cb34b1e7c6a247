package styling

import (
	"context"
	"testing"
	"time"

	stylingrepo "chartsmith/internal/repository/styling"
	chartstyle "chartsmith/internal/styling"
)

type fakeOrigin struct {
	loadCalls   int
	saveCalls   int
	deleteCalls int
	stored      chartstyle.ChartStyling
}

func (f *fakeOrigin) Load(_ context.Context, chartID string) (chartstyle.ChartStyling, error) {
	f.loadCalls++
	if len(f.stored.Colors) == 0 {
		return chartstyle.ChartStyling{}, stylingrepo.ErrNotFound
	}
	return f.stored.Clone(), nil
}

func (f *fakeOrigin) SaveChart(_ context.Context, chartID string, p chartstyle.Patch) error {
	f.saveCalls++
	f.stored.Apply(p)
	return nil
}

func (f *fakeOrigin) SaveMessage(context.Context, string, chartstyle.Patch) error {
	return nil
}

func (f *fakeOrigin) DeleteChart(context.Context, string) error {
	f.deleteCalls++
	f.stored = chartstyle.ChartStyling{}
	return nil
}

func TestCachedStore_ReadThroughAndWriteThrough(t *testing.T) {
	origin := &fakeOrigin{stored: chartstyle.ChartStyling{
		Colors:     []string{"#111111"},
		Typography: chartstyle.DefaultTypography(),
	}}
	store := NewCachedStore(origin, CacheConfig{TTL: time.Minute, MaxEntries: 8})

	s1, err := store.Load(context.Background(), "c1")
	if err != nil {
		t.Fatalf("load1 failed: %v", err)
	}
	s2, err := store.Load(context.Background(), "c1")
	if err != nil {
		t.Fatalf("load2 failed: %v", err)
	}
	if s1.Colors[0] != "#111111" || s2.Colors[0] != "#111111" {
		t.Fatalf("unexpected colors: %v %v", s1.Colors, s2.Colors)
	}
	if origin.loadCalls != 1 {
		t.Fatalf("expected one origin load, got %d", origin.loadCalls)
	}

	// Write-through: a save updates the cached copy in place.
	size := 20
	if err := store.SaveChart(context.Background(), "c1", chartstyle.Patch{
		Typography: &chartstyle.TypographyPatch{FontSize: &size},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	s3, err := store.Load(context.Background(), "c1")
	if err != nil {
		t.Fatalf("load3 failed: %v", err)
	}
	if s3.Typography.FontSize != 20 {
		t.Fatalf("expected cached font size 20, got %d", s3.Typography.FontSize)
	}
	if origin.loadCalls != 1 {
		t.Fatalf("save must not invalidate the cache, loads=%d", origin.loadCalls)
	}
}

func TestCachedStore_CachedPeeksWithoutOrigin(t *testing.T) {
	origin := &fakeOrigin{stored: chartstyle.ChartStyling{Colors: []string{"#222222"}}}
	store := NewCachedStore(origin, CacheConfig{})

	if _, ok := store.Cached("c1"); ok {
		t.Fatal("nothing loaded yet; peek must miss")
	}
	if origin.loadCalls != 0 {
		t.Fatal("peek must never touch the origin")
	}
	if _, err := store.Load(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Cached("c1"); !ok {
		t.Fatal("expected a cache hit after load")
	}
}

func TestCachedStore_InvalidateDropsEntry(t *testing.T) {
	origin := &fakeOrigin{stored: chartstyle.ChartStyling{Colors: []string{"#333333"}}}
	store := NewCachedStore(origin, CacheConfig{})

	if _, err := store.Load(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	store.Invalidate("c1")
	if _, ok := store.Cached("c1"); ok {
		t.Fatal("invalidated entry must not be served")
	}
	if _, err := store.Load(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	if origin.loadCalls != 2 {
		t.Fatalf("expected origin reload after invalidate, loads=%d", origin.loadCalls)
	}
}

func TestCachedStore_DeleteChartRemovesOriginAndCache(t *testing.T) {
	origin := &fakeOrigin{stored: chartstyle.ChartStyling{Colors: []string{"#444444"}}}
	store := NewCachedStore(origin, CacheConfig{})

	if _, err := store.Load(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteChart(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	if origin.deleteCalls != 1 {
		t.Fatalf("expected one origin delete, got %d", origin.deleteCalls)
	}
	if _, ok := store.Cached("c1"); ok {
		t.Fatal("deleted entry must not be served from cache")
	}
	if _, err := store.Load(context.Background(), "c1"); err != stylingrepo.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCachedStore_NotFoundIsNotCached(t *testing.T) {
	origin := &fakeOrigin{}
	store := NewCachedStore(origin, CacheConfig{})

	if _, err := store.Load(context.Background(), "missing"); err != stylingrepo.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := store.Cached("missing"); ok {
		t.Fatal("a miss must not poison the cache")
	}
}
