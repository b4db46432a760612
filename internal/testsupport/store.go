package testsupport

import (
	"context"
	"testing"

	"docdist/internal/config"
	"docdist/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.OpenConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("history.OpenConfig: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
