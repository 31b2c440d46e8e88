package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"leadclip/internal/modules/prospect/domain"
	prospectout "leadclip/internal/modules/prospect/port/out"
)

func newCache(t *testing.T) *SQLiteCache {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheReplaceAndList(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	prospects := []domain.Prospect{
		{ID: "a", Name: "Alpha One", Status: domain.StatusLNC, UserID: "u1", UpdatedAt: base},
		{ID: "b", Name: "Beta Two", Status: domain.StatusLC, AssignedLH: "lh-9", UpdatedAt: base.Add(time.Hour)},
		{ID: "c", Name: "Gamma Three", Status: domain.StatusLC, UserID: "u1", UpdatedAt: base.Add(2 * time.Hour)},
	}
	if err := cache.Replace(ctx, prospects); err != nil {
		t.Fatalf("replace: %v", err)
	}

	all, err := cache.List(ctx, prospectout.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" {
		t.Fatalf("ordering by updated_at desc broken: %+v", all)
	}

	byStatus, err := cache.List(ctx, prospectout.ListFilter{Statuses: []domain.Status{domain.StatusLC}})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("status filter: %+v", byStatus)
	}

	byHandler, err := cache.List(ctx, prospectout.ListFilter{HandlerID: "lh-9"})
	if err != nil {
		t.Fatalf("list by handler: %v", err)
	}
	if len(byHandler) != 1 || byHandler[0].ID != "b" {
		t.Fatalf("handler filter: %+v", byHandler)
	}
}

func TestCacheReplaceOverwritesPrevious(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()

	if err := cache.Replace(ctx, []domain.Prospect{{ID: "old", Name: "Old", Status: domain.StatusNew}}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := cache.Replace(ctx, []domain.Prospect{{ID: "new", Name: "New", Status: domain.StatusNew}}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	all, err := cache.List(ctx, prospectout.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != "new" {
		t.Fatalf("stale rows survived: %+v", all)
	}
}

func TestCacheRoundTripsFullRecord(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()

	p := domain.Prospect{
		ID:            "r1",
		Name:          "Jane Doe",
		IntentSkills:  []string{"golang", "distributed systems"},
		LinkedInState: domain.LinkedInConnected,
		Status:        domain.StatusBLC,
	}
	if err := cache.Replace(ctx, []domain.Prospect{p}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	all, err := cache.List(ctx, prospectout.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := all[0]
	if len(got.IntentSkills) != 2 || got.LinkedInState != domain.LinkedInConnected {
		t.Fatalf("record fields lost: %+v", got)
	}
}
