package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeProvider struct {
	redirects []string
}

func (p *fakeProvider) Configured() bool    { return true }
func (p *fakeProvider) CallbackURL() string { return "http://localhost/api/auth/callback/google" }

func (p *fakeProvider) AuthURL(state string) (string, error) {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state), nil
}

func (p *fakeProvider) Exchange(_ context.Context, code, redirectURI string) (*OAuthUserInfo, error) {
	p.redirects = append(p.redirects, redirectURI)
	if code == "bad" {
		return nil, errors.New("invalid_grant")
	}
	return &OAuthUserInfo{ProviderID: "g-" + code, Email: code + "@example.com", DisplayName: code}, nil
}

type authFixture struct {
	router   *gin.Engine
	repo     *Repository
	provider *fakeProvider
	jwt      *JWTManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newTestRepository(t)
	provider := &fakeProvider{}
	jwt := newTestJWTManager(t, testSecret, time.Hour)
	handler := NewHandler(repo, provider, NewOAuthStateStore(repo), NewRefreshTokenStore(repo, time.Hour), jwt, zap.NewNop(), false)

	router := gin.New()
	RegisterRoutes(router.Group("/api"), handler, NewMiddleware(jwt, repo))
	return &authFixture{router: router, repo: repo, provider: provider, jwt: jwt}
}

func (f *authFixture) do(method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodePair(t *testing.T, w *httptest.ResponseRecorder) TokenPair {
	t.Helper()
	var resp struct {
		Data TokenPair `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return resp.Data
}

func TestSignin_IssuesTokens(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(http.MethodPost, "/api/auth/signin", `{"code":"alice"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	pair := decodePair(t, w)
	if pair.JWT == "" || !strings.HasPrefix(pair.RefreshToken, RefreshTokenPrefix) {
		t.Errorf("pair = %+v", pair)
	}
	if len(f.provider.redirects) != 1 || f.provider.redirects[0] != PopupRedirectURI {
		t.Errorf("redirects = %v", f.provider.redirects)
	}

	claims, err := f.jwt.Parse(pair.JWT)
	if err != nil || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v, %v", claims, err)
	}
}

func TestSignin_RejectsOtherShapes(t *testing.T) {
	f := newAuthFixture(t)

	bodies := []string{
		`"alice"`,
		`{"code":""}`,
		`{}`,
		`{"code":"alice","redirectUri":"x"}`,
		`{"credential":"jwt"}`,
		`not json`,
	}
	for _, body := range bodies {
		if w := f.do(http.MethodPost, "/api/auth/signin", body, nil); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, w.Code)
		}
	}
	if len(f.provider.redirects) != 0 {
		t.Error("provider should not be called for rejected bodies")
	}
}

func TestSignin_ExchangeFailure(t *testing.T) {
	f := newAuthFixture(t)
	if w := f.do(http.MethodPost, "/api/auth/signin", `{"code":"bad"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSignin_SuspendedUser(t *testing.T) {
	f := newAuthFixture(t)
	user := newTestUser(t, f.repo, "mallory@example.com")
	f.repo.SetUserStatus(context.Background(), user.ID, StatusSuspended)

	if w := f.do(http.MethodPost, "/api/auth/signin", `{"code":"mallory"}`, nil); w.Code != http.StatusForbidden {
		t.Errorf("status = %d", w.Code)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	first := decodePair(t, f.do(http.MethodPost, "/api/auth/signin", `{"code":"alice"}`, nil))

	w := f.do(http.MethodPost, "/api/auth/refresh", `{"refreshToken":"`+first.RefreshToken+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d: %s", w.Code, w.Body.String())
	}
	second := decodePair(t, w)
	if second.RefreshToken == first.RefreshToken || second.JWT == "" {
		t.Errorf("second = %+v", second)
	}

	if w := f.do(http.MethodPost, "/api/auth/refresh", `{"refreshToken":"`+first.RefreshToken+`"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("reused refresh status = %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/api/auth/refresh", `{}`, nil); w.Code != http.StatusBadRequest {
		t.Errorf("empty refresh status = %d", w.Code)
	}

	if w := f.do(http.MethodPost, "/api/auth/logout", `{"refreshToken":"`+second.RefreshToken+`"}`, nil); w.Code != http.StatusOK {
		t.Errorf("logout status = %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/api/auth/refresh", `{"refreshToken":"`+second.RefreshToken+`"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout status = %d", w.Code)
	}
}

func TestMe_RequiresBearer(t *testing.T) {
	f := newAuthFixture(t)
	pair := decodePair(t, f.do(http.MethodPost, "/api/auth/signin", `{"code":"alice"}`, nil))

	if w := f.do(http.MethodGet, "/api/auth/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d", w.Code)
	}
	if w := f.do(http.MethodGet, "/api/auth/me", "", http.Header{"Authorization": {"Basic abc"}}); w.Code != http.StatusUnauthorized {
		t.Errorf("basic status = %d", w.Code)
	}

	w := f.do(http.MethodGet, "/api/auth/me", "", http.Header{"Authorization": {"Bearer " + pair.JWT}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"email":"alice@example.com"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLoginAndCallback(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(http.MethodGet, "/api/auth/login/google", "", nil)
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("login status = %d", w.Code)
	}
	location, _ := url.Parse(w.Header().Get("Location"))
	state := location.Query().Get("state")
	if state == "" {
		t.Fatalf("no state in %s", location)
	}
	cookie := w.Result().Cookies()[0]
	if cookie.Name != OAuthStateCookieName || cookie.Value != state {
		t.Errorf("cookie = %+v", cookie)
	}

	callback := "/api/auth/callback/google?code=bob&state=" + url.QueryEscape(state)
	withCookie := http.Header{"Cookie": {OAuthStateCookieName + "=" + state}}

	if w := f.do(http.MethodGet, "/api/auth/callback/google?code=bob&state=other", "", withCookie); w.Code != http.StatusBadRequest {
		t.Errorf("mismatched state status = %d", w.Code)
	}

	w = f.do(http.MethodGet, callback, "", withCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("callback status = %d: %s", w.Code, w.Body.String())
	}
	if pair := decodePair(t, w); pair.JWT == "" {
		t.Error("callback returned no token")
	}
	if last := f.provider.redirects[len(f.provider.redirects)-1]; last != f.provider.CallbackURL() {
		t.Errorf("redirect = %q", last)
	}

	// states are single-use
	if w := f.do(http.MethodGet, callback, "", withCookie); w.Code != http.StatusBadRequest {
		t.Errorf("replayed callback status = %d", w.Code)
	}
}
