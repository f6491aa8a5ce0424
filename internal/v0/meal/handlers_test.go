package meal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/bookmark"
	"mealgo/internal/databases"
	"mealgo/internal/kv"
	"mealgo/internal/neis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeSource struct {
	days  map[string]neis.MealDay
	calls []string
}

func (f *fakeSource) Meal(_ context.Context, date time.Time) neis.MealDay {
	key := neis.FormatDate(date)
	f.calls = append(f.calls, key)
	if day, ok := f.days[key]; ok {
		return day
	}
	return neis.EmptyMealDay()
}

func newTestRouter(t *testing.T, source Source, now time.Time) (*gin.Engine, *bookmark.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := databases.OpenMigrated(databases.MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	marks := bookmark.NewRepository(kv.NewSQLiteStore(db))
	h := NewHandler(source, marks, zap.NewNop(), func() time.Time { return now })

	router := gin.New()
	group := router.Group("/api/v0", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, int64(1))
	})
	RegisterRoutes(group, h)
	return router, marks
}

func TestGetMeals_AnnotatesBookmarks(t *testing.T) {
	day := neis.EmptyMealDay()
	day.Meals.Lunch = []string{"쌀밥", "돈까스", "김치"}
	day.Calories.Lunch = "650 Kcal"
	day.TotalCalorie = 650
	source := &fakeSource{days: map[string]neis.MealDay{"20251011": day}}

	router, marks := newTestRouter(t, source, time.Date(2025, 10, 11, 12, 0, 0, 0, time.UTC))
	marks.Add(context.Background(), "1", "돈 까스")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/meals", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data Response `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := resp.Data
	if got.Date != "20251011" || got.Display != "10월 11일" || got.TotalCalorie != 650 {
		t.Errorf("response = %+v", got)
	}
	want := []bookmark.Dish{{Name: "쌀밥"}, {Name: "돈까스", Bookmarked: true}, {Name: "김치"}}
	if len(got.Meals.Lunch) != 3 {
		t.Fatalf("lunch = %+v", got.Meals.Lunch)
	}
	for i := range want {
		if got.Meals.Lunch[i] != want[i] {
			t.Errorf("lunch[%d] = %+v, want %+v", i, got.Meals.Lunch[i], want[i])
		}
	}
	if got.Meals.Breakfast == nil || len(got.Meals.Breakfast) != 0 {
		t.Errorf("breakfast = %+v, want empty list", got.Meals.Breakfast)
	}
}

func TestGetMeals_DateQuery(t *testing.T) {
	source := &fakeSource{}
	router, _ := newTestRouter(t, source, time.Date(2025, 10, 11, 12, 0, 0, 0, time.UTC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/meals?date=20251224", nil))
	if w.Code != http.StatusOK || len(source.calls) != 1 || source.calls[0] != "20251224" {
		t.Errorf("status = %d calls = %v", w.Code, source.calls)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/meals?date=2025-12-24", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d", w.Code)
	}
}
