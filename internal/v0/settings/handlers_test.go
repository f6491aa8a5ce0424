package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mealgo/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data   Settings `json:"data"`
	Errors []string `json:"errors"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc, _ := newTestService(t)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, int64(7))
		c.Next()
	})
	if err := RegisterRoutes(r.Group("/api/v0"), NewHandler(svc, zap.NewNop())); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r
}

func do(r *gin.Engine, method, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, "/api/v0/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandlers_GetPut(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(r, http.MethodGet, "")
	if w.Code != http.StatusOK || env.Data != Defaults() {
		t.Fatalf("GET = %d %+v", w.Code, env)
	}

	w, env = do(r, http.MethodPut, `{"grade":"2","classNm":"5","darkMode":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT = %d %s", w.Code, w.Body.String())
	}
	if env.Data.Grade != "2" || env.Data.ClassNm != "5" || env.Data.DarkMode {
		t.Errorf("PUT data = %+v", env.Data)
	}

	_, env = do(r, http.MethodGet, "")
	if env.Data.Grade != "2" || !env.Data.HighContrastMode {
		t.Errorf("GET after PUT = %+v", env.Data)
	}

	w, env = do(r, http.MethodDelete, "")
	if w.Code != http.StatusOK || env.Data != Defaults() {
		t.Errorf("DELETE = %d %+v", w.Code, env.Data)
	}
}

func TestHandlers_PutRejectsInvalid(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []string{`{"grade":"9"}`, `{"classNm":"x"}`, `{"darkMode":"no"}`, `not json`} {
		w, env := do(r, http.MethodPut, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("PUT %s = %d, want 400", body, w.Code)
		}
		if len(env.Errors) == 0 {
			t.Errorf("PUT %s returned no error messages", body)
		}
	}

	_, env := do(r, http.MethodGet, "")
	if env.Data != Defaults() {
		t.Errorf("settings changed after rejected updates: %+v", env.Data)
	}
}
