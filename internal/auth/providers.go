package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// PopupRedirectURI is the redirect used by codes obtained from the Google sign-in popup
const PopupRedirectURI = "postmessage"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrProviderNotConfigured = errors.New("google OAuth not configured")

// IdentityProvider turns an authorization code into the signed-in user's profile
type IdentityProvider interface {
	Configured() bool
	AuthURL(state string) (string, error)
	// Exchange redeems code; redirectURI must match the one the code was issued for
	Exchange(ctx context.Context, code, redirectURI string) (*OAuthUserInfo, error)
	CallbackURL() string
}

// ProviderConfig holds the credentials for an OAuth provider
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
}

// GoogleProvider exchanges Google authorization codes
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider returns an unconfigured provider when the credentials are empty
func NewGoogleProvider(cfg ProviderConfig, callbackBaseURL string) *GoogleProvider {
	p := &GoogleProvider{userInfoURL: googleUserInfoURL}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return p
	}
	p.config = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  callbackBaseURL + "/api/auth/callback/google",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	return p
}

func (p *GoogleProvider) Configured() bool {
	return p.config != nil
}

func (p *GoogleProvider) CallbackURL() string {
	if p.config == nil {
		return ""
	}
	return p.config.RedirectURL
}

func (p *GoogleProvider) AuthURL(state string) (string, error) {
	if p.config == nil {
		return "", ErrProviderNotConfigured
	}
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (p *GoogleProvider) Exchange(ctx context.Context, code, redirectURI string) (*OAuthUserInfo, error) {
	if p.config == nil {
		return nil, ErrProviderNotConfigured
	}

	cfg := *p.config
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	info, err := p.userInfo(cfg.Client(ctx, token))
	if err != nil {
		return nil, err
	}
	info.AccessToken = token.AccessToken
	info.RefreshToken = token.RefreshToken
	return info, nil
}

// googleUserInfo represents Google's userinfo response
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (p *GoogleProvider) userInfo(client *http.Client) (*OAuthUserInfo, error) {
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("google API error: %s", string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fmt.Errorf("email not provided by Google")
	}

	displayName := info.Name
	if displayName == "" {
		displayName = info.Email
	}
	return &OAuthUserInfo{
		ProviderID:  info.ID,
		Email:       info.Email,
		DisplayName: displayName,
	}, nil
}
