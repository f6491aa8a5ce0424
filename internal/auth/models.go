package auth

import (
	"database/sql"
	"time"
)

// Status represents user account status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Provider represents OAuth providers
type Provider string

const (
	ProviderGoogle Provider = "google"
)

// User is an account created on first sign-in
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OAuthIdentity links a user to an OAuth provider
type OAuthIdentity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Provider     Provider  `json:"provider"`
	ProviderID   string    `json:"providerId"`
	AccessToken  *string   `json:"-"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OAuthUserInfo represents user info returned from OAuth providers
type OAuthUserInfo struct {
	ProviderID   string
	Email        string
	DisplayName  string
	AccessToken  string
	RefreshToken string
}

// SigninRequest is the only accepted body of POST /api/auth/signin
type SigninRequest struct {
	Code string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenPair is returned by signin and refresh
type TokenPair struct {
	JWT          string    `json:"jwt"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ScanNullableString converts sql.NullString to *string
func ScanNullableString(s sql.NullString) *string {
	if s.Valid {
		return &s.String
	}
	return nil
}
