package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// LinkedInScopes covers identity, profile, email and posting.
var LinkedInScopes = []string{"openid", "profile", "email", "w_member_social"}

// LinkedInConfig holds the credential and endpoints of the LinkedIn OAuth app.
type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// LinkedInProvider implements port.AuthProvider for LinkedIn OAuth2 / OpenID.
type LinkedInProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewLinkedInProvider creates a new LinkedIn OAuth2 provider.
func NewLinkedInProvider(cfg LinkedInConfig) *LinkedInProvider {
	return &LinkedInProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       LinkedInScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ProviderName returns "linkedin".
func (l *LinkedInProvider) ProviderName() string {
	return "linkedin"
}

// AuthURL returns the LinkedIn consent screen URL.
func (l *LinkedInProvider) AuthURL(state string) string {
	return l.oauth.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token.
// A non-2xx response or a body without access_token is an error.
func (l *LinkedInProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenPair, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, l.httpClient)

	tok, err := l.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("linkedin: token exchange: %w", err)
	}

	pair := &domain.TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		pair.ExpiresIn = int(time.Until(tok.Expiry).Seconds())
	}
	return pair, nil
}

// UserID fetches the OpenID userinfo document and returns its subject.
func (l *LinkedInProvider) UserID(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.userInfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("linkedin: create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("linkedin: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("linkedin: userinfo fetch failed (%d): %s", resp.StatusCode, string(body))
	}

	var info struct {
		Subject string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("linkedin: decode userinfo: %w", err)
	}
	if info.Subject == "" {
		return "", fmt.Errorf("linkedin: userinfo response missing sub")
	}
	return info.Subject, nil
}
