package bookmark

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mealgo/internal/databases"
	"mealgo/internal/kv"

	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) (*Repository, kv.Store) {
	t.Helper()
	db, err := databases.OpenMigrated(databases.MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := kv.NewSQLiteStore(db)
	return NewRepository(store), store
}

func TestRepository_AddListRemove(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	list, err := repo.List(ctx, "u1")
	if err != nil || len(list) != 0 {
		t.Fatalf("initial List = %v, %v", list, err)
	}

	repo.Add(ctx, "u1", " 김치 ")
	repo.Add(ctx, "u1", "불고기")
	list, err = repo.Add(ctx, "u1", "김치")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want := []string{"김치", "불고기", "김치"}; !reflect.DeepEqual(list, want) {
		t.Errorf("list = %q, want %q", list, want)
	}

	list, err = repo.Remove(ctx, "u1", "김치")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if want := []string{"불고기"}; !reflect.DeepEqual(list, want) {
		t.Errorf("after Remove = %q, want %q", list, want)
	}

	stored, _ := repo.List(ctx, "u1")
	if !reflect.DeepEqual(stored, list) {
		t.Errorf("stored = %q, want %q", stored, list)
	}
	other, _ := repo.List(ctx, "u2")
	if len(other) != 0 {
		t.Errorf("other owner sees %q", other)
	}
}

func TestRepository_RejectsBlank(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	if _, err := repo.Add(ctx, "u1", "  "); !errors.Is(err, ErrEmptyBookmark) {
		t.Errorf("err = %v, want ErrEmptyBookmark", err)
	}
	list, _ := repo.List(ctx, "u1")
	if len(list) != 0 {
		t.Errorf("list = %q", list)
	}
}

func TestRepository_MalformedReadsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	for _, raw := range []string{`{not json`, `null`, `{"a":1}`} {
		store.Set(ctx, "u1", StorageKey, []byte(raw))
		list, err := repo.List(ctx, "u1")
		if err != nil || list == nil || len(list) != 0 {
			t.Errorf("value %s: List = %v, %v", raw, list, err)
		}
	}
}

func TestRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	list, err := repo.Replace(ctx, "u1", []string{"우유", " ", "  딸기 "})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if want := []string{"우유", "딸기"}; !reflect.DeepEqual(list, want) {
		t.Errorf("list = %q, want %q", list, want)
	}
}
