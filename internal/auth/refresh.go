package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// RefreshTokenStore persists hashed refresh tokens. Each token is single-use:
// Rotate revokes the presented token and issues its successor.
type RefreshTokenStore struct {
	repo *Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewRefreshTokenStore(repo *Repository, ttl time.Duration) *RefreshTokenStore {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	return &RefreshTokenStore{repo: repo, ttl: ttl, now: time.Now}
}

// Issue creates a refresh token for userID
func (s *RefreshTokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	raw, hash, err := generateRefreshToken()
	if err != nil {
		return "", err
	}
	_, err = s.repo.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)
	`, userID, hash, s.now().Add(s.ttl))
	if err != nil {
		return "", err
	}
	return raw, nil
}

// Rotate revokes raw and returns its owner and a fresh token
func (s *RefreshTokenStore) Rotate(ctx context.Context, raw string) (int64, string, error) {
	if !strings.HasPrefix(raw, RefreshTokenPrefix) {
		return 0, "", ErrInvalidRefreshToken
	}

	tx, err := s.repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var id, userID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id FROM refresh_tokens
		WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?
	`, hashToken(raw), s.now()).Scan(&id, &userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrInvalidRefreshToken
	}
	if err != nil {
		return 0, "", err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE refresh_tokens SET revoked_at = ? WHERE id = ?", s.now(), id); err != nil {
		return 0, "", err
	}

	next, hash, err := generateRefreshToken()
	if err != nil {
		return 0, "", err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)
	`, userID, hash, s.now().Add(s.ttl)); err != nil {
		return 0, "", err
	}

	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return userID, next, nil
}

// Revoke invalidates raw; unknown tokens are ignored
func (s *RefreshTokenStore) Revoke(ctx context.Context, raw string) error {
	_, err := s.repo.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL
	`, s.now(), hashToken(raw))
	return err
}

// RevokeUser invalidates every token of userID
func (s *RefreshTokenStore) RevokeUser(ctx context.Context, userID int64) error {
	_, err := s.repo.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL
	`, s.now(), userID)
	return err
}

// Cleanup deletes expired and revoked tokens
func (s *RefreshTokenStore) Cleanup(ctx context.Context) error {
	_, err := s.repo.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at <= ? OR revoked_at IS NOT NULL
	`, s.now())
	return err
}
