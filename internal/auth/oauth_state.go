package auth

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/mr-tron/base58"
)

// OAuthStateExpiry is how long a login redirect may take
const OAuthStateExpiry = 10 * time.Minute

// OAuthStateStore issues single-use CSRF states for the redirect login flow
type OAuthStateStore struct {
	repo *Repository
	now  func() time.Time
}

func NewOAuthStateStore(repo *Repository) *OAuthStateStore {
	return &OAuthStateStore{repo: repo, now: time.Now}
}

// Create stores and returns a new random state
func (s *OAuthStateStore) Create(ctx context.Context) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := base58.Encode(buf)

	_, err := s.repo.db.ExecContext(ctx,
		"INSERT INTO oauth_states (state, expires_at) VALUES (?, ?)",
		state, s.now().Add(OAuthStateExpiry),
	)
	if err != nil {
		return "", err
	}
	return state, nil
}

// Consume deletes state and reports whether it existed and had not expired
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	result, err := s.repo.db.ExecContext(ctx,
		"DELETE FROM oauth_states WHERE state = ? AND expires_at > ?",
		state, s.now(),
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Cleanup removes expired states
func (s *OAuthStateStore) Cleanup(ctx context.Context) error {
	_, err := s.repo.db.ExecContext(ctx, "DELETE FROM oauth_states WHERE expires_at <= ?", s.now())
	return err
}
