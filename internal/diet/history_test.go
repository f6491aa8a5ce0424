package diet

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"mealgo/internal/databases"
	"mealgo/internal/kv"

	"go.uber.org/zap"
)

func newTestHistory(t *testing.T) (*History, kv.Store) {
	t.Helper()
	db, err := databases.OpenMigrated(databases.MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := kv.NewSQLiteStore(db)
	return NewHistory(store), store
}

func TestHistory_UpsertReplacesSameDate(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHistory(t)

	h.Upsert(ctx, "u1", ConsumptionRecord{Date: "20250301", TotalCalorie: 800, Percentage: 50})
	h.Upsert(ctx, "u1", ConsumptionRecord{Date: "20250302", TotalCalorie: 900, Percentage: 100})
	if err := h.Upsert(ctx, "u1", ConsumptionRecord{Date: "20250301", TotalCalorie: 800, Percentage: 80}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all, err := h.All(ctx, "u1")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []ConsumptionRecord{
		{Date: "20250302", TotalCalorie: 900, Percentage: 100},
		{Date: "20250301", TotalCalorie: 800, Percentage: 80},
	}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("All = %+v, want %+v", all, want)
	}

	rec, ok, err := h.Find(ctx, "u1", "20250301")
	if err != nil || !ok || rec.Percentage != 80 {
		t.Errorf("Find = %+v, %v, %v", rec, ok, err)
	}
	if rec.ConsumedCalorie() != 640 {
		t.Errorf("ConsumedCalorie = %v, want 640", rec.ConsumedCalorie())
	}
	if _, ok, _ := h.Find(ctx, "u1", "20250303"); ok {
		t.Error("Find of unknown date should report false")
	}
}

func TestHistory_RecentReverseInsertionOrder(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHistory(t)

	for i := 1; i <= 5; i++ {
		h.Upsert(ctx, "u1", ConsumptionRecord{Date: fmt.Sprintf("2025030%d", i), TotalCalorie: 700, Percentage: 100})
	}

	recent, err := h.Recent(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var dates []string
	for _, r := range recent {
		dates = append(dates, r.Date)
	}
	if want := []string{"20250305", "20250304", "20250303"}; !reflect.DeepEqual(dates, want) {
		t.Errorf("Recent dates = %v, want %v", dates, want)
	}

	if all, _ := h.Recent(ctx, "u1", 10); len(all) != 5 {
		t.Errorf("Recent(10) returned %d records", len(all))
	}
	if none, _ := h.Recent(ctx, "u1", 0); len(none) != 0 {
		t.Errorf("Recent(0) = %+v", none)
	}
}

func TestHistory_MalformedReadsEmpty(t *testing.T) {
	ctx := context.Background()
	h, store := newTestHistory(t)

	store.Set(ctx, "u1", HistoryKey, []byte(`[{"date":`))
	all, err := h.All(ctx, "u1")
	if err != nil || len(all) != 0 {
		t.Errorf("All = %+v, %v", all, err)
	}

	if err := h.Upsert(ctx, "u1", ConsumptionRecord{Date: "20250301", TotalCalorie: 600, Percentage: 10}); err != nil {
		t.Fatalf("Upsert over malformed data: %v", err)
	}
	if all, _ := h.All(ctx, "u1"); len(all) != 1 {
		t.Errorf("All = %+v", all)
	}
}

func TestHistory_StoredShape(t *testing.T) {
	ctx := context.Background()
	h, store := newTestHistory(t)

	h.Upsert(ctx, "u1", ConsumptionRecord{Date: "20250301", TotalCalorie: 650.5, Percentage: 50})
	raw, _ := store.Get(ctx, "u1", HistoryKey)
	if string(raw) != `[{"date":"20250301","totalCalorie":650.5,"percentage":50}]` {
		t.Errorf("stored = %s", raw)
	}
}

func TestHistory_Notes(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHistory(t)

	saved, err := h.SaveNote(ctx, "u1", "20250301", "   ")
	if err != nil || saved {
		t.Errorf("blank note: saved=%v err=%v", saved, err)
	}
	if note, _ := h.Note(ctx, "u1", "20250301"); note != "" {
		t.Errorf("note = %q", note)
	}

	if saved, _ := h.SaveNote(ctx, "u1", "20250301", "급식 맛있었음"); !saved {
		t.Error("note should be saved")
	}
	h.SaveNote(ctx, "u1", "20250228", "반찬 남김")

	note, err := h.Note(ctx, "u1", "20250301")
	if err != nil || note != "급식 맛있었음" {
		t.Errorf("Note = %q, %v", note, err)
	}

	dates, err := h.NoteDates(ctx, "u1")
	if err != nil {
		t.Fatalf("NoteDates: %v", err)
	}
	if want := []string{"20250228", "20250301"}; !reflect.DeepEqual(dates, want) {
		t.Errorf("NoteDates = %v, want %v", dates, want)
	}
}
