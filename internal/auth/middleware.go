package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"mealgo/internal/common"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextKeyUserID = "auth_user_id"
	ContextKeyClaims = "auth_claims"

	HeaderAuthorization = "Authorization"

	// browsers cannot set headers on a websocket handshake
	queryAccessToken = "access_token"
)

// Middleware authenticates requests with access tokens
type Middleware struct {
	jwt  *JWTManager
	repo *Repository
}

func NewMiddleware(jwt *JWTManager, repo *Repository) *Middleware {
	return &Middleware{jwt: jwt, repo: repo}
}

// RequireUser validates the bearer token and stores the user id in the context
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			common.Abort(c, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		claims, err := m.jwt.Parse(raw)
		if err != nil {
			msg := "invalid access token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "access token expired"
			}
			common.Abort(c, http.StatusUnauthorized, msg)
			return
		}

		userID, _ := claims.UserID()
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireActiveUser additionally rejects suspended or deleted accounts
func (m *Middleware) RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			common.Abort(c, http.StatusUnauthorized, "not authenticated")
			return
		}
		user, err := m.repo.GetUserByID(c.Request.Context(), id)
		if err != nil {
			common.Abort(c, http.StatusInternalServerError, "failed to load user")
			return
		}
		if user == nil || user.Status != StatusActive {
			common.Abort(c, http.StatusForbidden, "account is not active")
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(HeaderAuthorization)
	if header == "" {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			token := c.Query(queryAccessToken)
			return token, token != ""
		}
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Owner returns the key-value owner of the authenticated user, or "" when anonymous
func Owner(c *gin.Context) string {
	id, ok := UserID(c)
	if !ok {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
