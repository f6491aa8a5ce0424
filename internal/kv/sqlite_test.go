package kv

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mealgo/internal/databases"

	"go.uber.org/zap"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := databases.OpenMigrated(databases.MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteStore_GetSetDelete(t *testing.T) {
	testGetSetDelete(t, newTestSQLiteStore(t))
}

func TestSQLiteStore_Keys(t *testing.T) {
	testKeys(t, newTestSQLiteStore(t))
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	cache := Scoped(store, SharedOwner)

	if err := cache.Set(ctx, "meal:20251011", []byte("{}")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err := store.Get(ctx, SharedOwner, "meal:20251011")
	if err != nil || string(raw) != "{}" {
		t.Errorf("underlying store: %q, %v", raw, err)
	}
	keys, _ := cache.Keys(ctx, "meal:")
	if !reflect.DeepEqual(keys, []string{"meal:20251011"}) {
		t.Errorf("keys = %v", keys)
	}
	if err := cache.Delete(ctx, "meal:20251011"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := cache.Get(ctx, "meal:20251011"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestFilterKeys(t *testing.T) {
	got := filterKeys([]string{"note_2", "mealAppSettings", "note_1"}, "note_")
	if want := []string{"note_1", "note_2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("filterKeys = %v, want %v", got, want)
	}
	if got := filterKeys(nil, "x"); got == nil || len(got) != 0 {
		t.Errorf("filterKeys(nil) = %v", got)
	}
}
