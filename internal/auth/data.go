package auth

import (
	"context"
	"database/sql"
	"errors"
)

// Repository provides access to the users and oauth_identities tables
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByID returns nil when the user does not exist
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, status, created_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByEmail returns nil when no user has the address
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, status, created_at
		FROM users WHERE email = ?
	`, email))
}

func (r *Repository) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Status, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) CreateUser(ctx context.Context, email, displayName string) (*User, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, display_name) VALUES (?, ?)
	`, email, displayName)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, id)
}

// SetUserStatus suspends or reactivates an account
func (r *Repository) SetUserStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *Repository) GetOAuthIdentity(ctx context.Context, provider Provider, providerID string) (*OAuthIdentity, error) {
	var o OAuthIdentity
	var accessToken, refreshToken sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, provider, provider_id, access_token, refresh_token, created_at
		FROM oauth_identities
		WHERE provider = ? AND provider_id = ?
	`, provider, providerID).Scan(&o.ID, &o.UserID, &o.Provider, &o.ProviderID, &accessToken, &refreshToken, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	o.AccessToken = ScanNullableString(accessToken)
	o.RefreshToken = ScanNullableString(refreshToken)
	return &o, nil
}

func (r *Repository) CreateOAuthIdentity(ctx context.Context, userID int64, provider Provider, providerID, accessToken, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO oauth_identities (user_id, provider, provider_id, access_token, refresh_token)
		VALUES (?, ?, ?, ?, ?)
	`, userID, provider, providerID, accessToken, refreshToken)
	return err
}

// UpdateOAuthIdentityTokens keeps the stored refresh token when the provider sends none
func (r *Repository) UpdateOAuthIdentityTokens(ctx context.Context, id int64, accessToken, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE oauth_identities
		SET access_token = ?, refresh_token = COALESCE(NULLIF(?, ''), refresh_token)
		WHERE id = ?
	`, accessToken, refreshToken, id)
	return err
}

// FindOrCreateUser resolves the provider identity to a user, linking by email
// or creating the account on first sign-in
func (r *Repository) FindOrCreateUser(ctx context.Context, provider Provider, info *OAuthUserInfo) (*User, error) {
	identity, err := r.GetOAuthIdentity(ctx, provider, info.ProviderID)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		if err := r.UpdateOAuthIdentityTokens(ctx, identity.ID, info.AccessToken, info.RefreshToken); err != nil {
			return nil, err
		}
		return r.GetUserByID(ctx, identity.UserID)
	}

	user, err := r.GetUserByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = r.CreateUser(ctx, info.Email, info.DisplayName)
		if err != nil {
			return nil, err
		}
	}

	if err := r.CreateOAuthIdentity(ctx, user.ID, provider, info.ProviderID, info.AccessToken, info.RefreshToken); err != nil {
		return nil, err
	}
	return user, nil
}
