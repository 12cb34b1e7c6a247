package chartstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"chartsmith/internal/chart"
	"chartsmith/internal/tester"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := Record{
		ID:        "c1",
		DatasetID: "d1",
		Config:    chart.Config{ChartType: chart.TypeBar, Title: "T"},
		CreatedAt: time.Now(),
	}
	tester.NoErr(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "c1")
	tester.NoErr(t, err)
	tester.Eq(t, got.Config.Title, "T")
	tester.Eq(t, got.DatasetID, "d1")

	tester.NoErr(t, s.Delete(ctx, "c1"))
	_, err = s.Get(ctx, "c1")
	tester.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound after delete")
	// Deleting again is a no-op.
	tester.NoErr(t, s.Delete(ctx, "c1"))
}

func TestMemoryStore_PutRequiresID(t *testing.T) {
	s := NewMemoryStore()
	tester.Err(t, s.Put(context.Background(), Record{}))
}

func TestMemoryStore_ListOrdersByCreation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	tester.NoErr(t, s.Put(ctx, Record{ID: "c2", CreatedAt: base.Add(time.Minute)}))
	tester.NoErr(t, s.Put(ctx, Record{ID: "c1", CreatedAt: base}))

	recs, err := s.List(ctx)
	tester.NoErr(t, err)
	tester.Eq(t, len(recs), 2)
	tester.Eq(t, recs[0].ID, "c1")
	tester.Eq(t, recs[1].ID, "c2")
}
