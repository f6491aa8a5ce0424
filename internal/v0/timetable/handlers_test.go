package timetable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/databases"
	"mealgo/internal/kv"
	"mealgo/internal/neis"
	"mealgo/internal/v0/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type request struct {
	date, grade, class string
}

type fakeSource struct {
	requests []request
}

func (f *fakeSource) Timetable(_ context.Context, date time.Time, grade, class string) []string {
	f.requests = append(f.requests, request{neis.FormatDate(date), grade, class})
	return []string{"국어", "수학", "", "", "", "", "", ""}
}

func newTestRouter(t *testing.T, source Source) (*gin.Engine, *settings.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := databases.OpenMigrated(databases.MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := settings.NewService(kv.NewSQLiteStore(db), nil)
	now := func() time.Time { return time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC) }

	router := gin.New()
	group := router.Group("/api/v0", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, int64(1))
	})
	if err := RegisterRoutes(group, NewHandler(source, svc, zap.NewNop(), now)); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return router, svc
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetTimetable_DefaultsFromSettings(t *testing.T) {
	source := &fakeSource{}
	router, svc := newTestRouter(t, source)

	grade, class := "2", "7"
	if _, err := svc.Patch(context.Background(), "1", settings.Patch{Grade: &grade, ClassNm: &class}); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	w := get(router, "/api/v0/timetable")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if want := (request{"20250304", "2", "7"}); len(source.requests) != 1 || source.requests[0] != want {
		t.Errorf("requests = %+v", source.requests)
	}

	var resp struct {
		Data Response `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Grade != "2" || resp.Data.Class != "7" || len(resp.Data.Periods) != 8 || resp.Data.Periods[0] != "국어" {
		t.Errorf("response = %+v", resp.Data)
	}
}

func TestGetTimetable_DefaultSettingsQueryOneClass(t *testing.T) {
	source := &fakeSource{}
	router, _ := newTestRouter(t, source)

	if w := get(router, "/api/v0/timetable"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if want := (request{"20250304", "1", "1"}); len(source.requests) != 1 || source.requests[0] != want {
		t.Errorf("requests = %+v", source.requests)
	}
}

func TestGetTimetable_QueryOverrides(t *testing.T) {
	source := &fakeSource{}
	router, _ := newTestRouter(t, source)

	if w := get(router, "/api/v0/timetable?date=20250310&grade=3&class=1"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if want := (request{"20250310", "3", "1"}); source.requests[0] != want {
		t.Errorf("request = %+v", source.requests[0])
	}

	// grade given without class queries the whole grade
	get(router, "/api/v0/timetable?grade=3")
	if want := (request{"20250304", "3", ""}); source.requests[1] != want {
		t.Errorf("request = %+v", source.requests[1])
	}
}

func TestGetTimetable_RejectsInvalidQuery(t *testing.T) {
	source := &fakeSource{}
	router, _ := newTestRouter(t, source)

	for _, path := range []string{
		"/api/v0/timetable?grade=9",
		"/api/v0/timetable?grade=1&class=99",
		"/api/v0/timetable?date=tomorrow",
	} {
		if w := get(router, path); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
	if len(source.requests) != 0 {
		t.Errorf("provider called for invalid queries: %+v", source.requests)
	}
}
