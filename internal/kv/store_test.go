package kv

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// testGetSetDelete checks the Get, Set and Delete behavior every Store shares
func testGetSetDelete(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "u1", "mealBookmarks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "u1", "mealBookmarks", []byte(`["김치"]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "u1", "mealBookmarks", []byte(`["김치","불고기"]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, err := store.Get(ctx, "u1", "mealBookmarks")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["김치","불고기"]` {
		t.Errorf("value = %s", got)
	}

	if _, err := store.Get(ctx, "u2", "mealBookmarks"); !errors.Is(err, ErrNotFound) {
		t.Errorf("owners must be isolated, got err = %v", err)
	}

	if err := store.Delete(ctx, "u1", "mealBookmarks"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "u1", "mealBookmarks"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Delete: err = %v", err)
	}
	if err := store.Delete(ctx, "u1", "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

// testKeys checks prefix listing, sorting and owner isolation
func testKeys(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	for _, key := range []string{"note_20250302", "note_20250301", "calorieHistory", "note%_x"} {
		if err := store.Set(ctx, "u1", key, []byte("x")); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	store.Set(ctx, "u2", "note_20250303", []byte("x"))

	keys, err := store.Keys(ctx, "u1", "note_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if want := []string{"note_20250301", "note_20250302"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	all, _ := store.Keys(ctx, "u1", "")
	if len(all) != 4 {
		t.Errorf("all keys = %v", all)
	}
}
