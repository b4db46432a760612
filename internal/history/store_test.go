package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"docdist/internal/docdist"
	"docdist/internal/history"
	"docdist/internal/testsupport"
)

func sampleResult(angle float64) docdist.Result {
	return docdist.Result{
		RunID: "run-1",
		A:     docdist.Profile{Name: "a.txt", Lines: 2, Words: 5, Distinct: 4},
		B:     docdist.Profile{Name: "b.txt", Lines: 1, Words: 3, Distinct: 3},
		Angle: angle,
	}
}

func TestInsertAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.Insert(ctx, history.NewRecord(sampleResult(0.5), "ascii", nil))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected record id")
	}
	failed := history.NewRecord(sampleResult(0), "unicode", errors.New("document a.txt has no words"))
	if _, err := store.Insert(ctx, failed); err != nil {
		t.Fatalf("Insert failed record: %v", err)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	newest, oldest := records[0], records[1]
	if newest.Defined() || newest.Error == "" || newest.Policy != "unicode" {
		t.Fatalf("unexpected newest record %+v", newest)
	}
	if !oldest.Defined() || *oldest.Angle != 0.5 {
		t.Fatalf("unexpected oldest record %+v", oldest)
	}
	if oldest.ID != first.ID || oldest.RunID != "run-1" {
		t.Fatalf("ids = %q/%q", oldest.ID, oldest.RunID)
	}
	if oldest.A != (history.DocSummary{Name: "a.txt", Lines: 2, Words: 5, Distinct: 4}) {
		t.Fatalf("summary a = %+v", oldest.A)
	}
	if oldest.CreatedAt.IsZero() {
		t.Fatal("created_at not round-tripped")
	}
}

func TestListLimit(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Insert(ctx, history.NewRecord(sampleResult(float64(i)), "ascii", nil)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || *records[0].Angle != 4 || *records[1].Angle != 3 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestInsertPrunesToKeepRows(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithKeepRows(3))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		if _, err := store.Insert(ctx, history.NewRecord(sampleResult(float64(i)), "ascii", nil)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if *records[len(records)-1].Angle != 4 {
		t.Fatalf("oldest kept angle = %v, want 4", *records[len(records)-1].Angle)
	}
}

func TestClear(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.Insert(ctx, history.NewRecord(sampleResult(1), "ascii", nil)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("count after clear = %d", n)
	}
}

func TestPruneRejectsNonPositive(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := store.Prune(context.Background(), 0); err == nil {
		t.Fatal("expected error for keep=0")
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := history.Open(ctx, path, history.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Insert(ctx, history.NewRecord(sampleResult(1.25), "ascii", nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(ctx, path, history.Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if reopened.Path() != path {
		t.Fatalf("path = %q", reopened.Path())
	}
	records, err := reopened.List(ctx, 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || *records[0].Angle != 1.25 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := history.Open(context.Background(), " ", history.Options{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
