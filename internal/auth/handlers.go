package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"mealgo/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	OAuthStateCookieName = "mealgo_oauth_state"
)

// Handler handles authentication endpoints
type Handler struct {
	repo         *Repository
	provider     IdentityProvider
	states       *OAuthStateStore
	refresh      *RefreshTokenStore
	jwt          *JWTManager
	logger       *zap.Logger
	secureCookie bool
}

// NewHandler creates a new auth handler
func NewHandler(
	repo *Repository,
	provider IdentityProvider,
	states *OAuthStateStore,
	refresh *RefreshTokenStore,
	jwt *JWTManager,
	logger *zap.Logger,
	secureCookie bool,
) *Handler {
	return &Handler{
		repo:         repo,
		provider:     provider,
		states:       states,
		refresh:      refresh,
		jwt:          jwt,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Signin exchanges a popup authorization code for a token pair
// POST /auth/signin
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.Code == "" {
		common.Fail(c, http.StatusBadRequest, `request body must be {"code": "<authorization code>"}`)
		return
	}

	if !h.provider.Configured() {
		common.Fail(c, http.StatusServiceUnavailable, "sign-in is not configured")
		return
	}

	info, err := h.provider.Exchange(c.Request.Context(), req.Code, PopupRedirectURI)
	if err != nil {
		h.logger.Warn("oauth code exchange failed", zap.Error(err))
		common.Fail(c, http.StatusUnauthorized, "failed to exchange authorization code")
		return
	}

	h.completeSignin(c, info)
}

// Login initiates the redirect OAuth flow
// GET /auth/login/google
func (h *Handler) Login(c *gin.Context) {
	if !h.provider.Configured() {
		common.Fail(c, http.StatusServiceUnavailable, "sign-in is not configured")
		return
	}

	state, err := h.states.Create(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to create oauth state", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to create auth state")
		return
	}

	authURL, err := h.provider.AuthURL(state)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to build authorization url")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(OAuthStateCookieName, state, int(OAuthStateExpiry.Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the redirect OAuth flow
// GET /auth/callback/google
func (h *Handler) Callback(c *gin.Context) {
	queryState := c.Query("state")
	cookieState, err := c.Cookie(OAuthStateCookieName)
	if err != nil || cookieState == "" {
		common.Fail(c, http.StatusBadRequest, "missing OAuth state cookie")
		return
	}
	if queryState != cookieState {
		common.Fail(c, http.StatusBadRequest, "OAuth state mismatch")
		return
	}

	valid, err := h.states.Consume(c.Request.Context(), queryState)
	if err != nil || !valid {
		common.Fail(c, http.StatusBadRequest, "invalid or expired OAuth state")
		return
	}
	c.SetCookie(OAuthStateCookieName, "", -1, "/", "", h.secureCookie, true)

	if errMsg := c.Query("error"); errMsg != "" {
		common.Fail(c, http.StatusBadRequest, "OAuth error: "+errMsg)
		return
	}
	code := c.Query("code")
	if code == "" {
		common.Fail(c, http.StatusBadRequest, "missing authorization code")
		return
	}

	info, err := h.provider.Exchange(c.Request.Context(), code, h.provider.CallbackURL())
	if err != nil {
		h.logger.Warn("oauth code exchange failed", zap.Error(err))
		common.Fail(c, http.StatusUnauthorized, "failed to exchange authorization code")
		return
	}

	h.completeSignin(c, info)
}

func (h *Handler) completeSignin(c *gin.Context, info *OAuthUserInfo) {
	user, err := h.repo.FindOrCreateUser(c.Request.Context(), ProviderGoogle, info)
	if err != nil {
		h.logger.Error("failed to find or create user", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	if user.Status != StatusActive {
		common.Fail(c, http.StatusForbidden, "account is "+string(user.Status))
		return
	}

	pair, err := h.issue(c, user)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.Int64("user_id", user.ID), zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	h.logger.Info("user signed in", zap.Int64("user_id", user.ID))
	common.Success(c, http.StatusOK, pair)
}

func (h *Handler) issue(c *gin.Context, user *User) (*TokenPair, error) {
	signed, expiresAt, err := h.jwt.Generate(user)
	if err != nil {
		return nil, err
	}
	refresh, err := h.refresh.Issue(c.Request.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{JWT: signed, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

// Refresh rotates a refresh token
// POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "refreshToken is required")
		return
	}

	userID, next, err := h.refresh.Rotate(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, ErrInvalidRefreshToken) {
		common.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to rotate refresh token", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to refresh token")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil || user.Status != StatusActive {
		_ = h.refresh.RevokeUser(c.Request.Context(), userID)
		common.Fail(c, http.StatusForbidden, "account is not active")
		return
	}

	signed, expiresAt, err := h.jwt.Generate(user)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	common.Success(c, http.StatusOK, TokenPair{JWT: signed, RefreshToken: next, ExpiresAt: expiresAt})
}

// Logout revokes a refresh token
// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "refreshToken is required")
		return
	}
	if err := h.refresh.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
		h.logger.Error("failed to revoke refresh token", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to log out")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me returns the current authenticated user
// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	user, err := h.repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		common.Fail(c, http.StatusNotFound, "user not found")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"user": user})
}
