package port

import (
	"context"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// AuthProvider abstracts the OAuth2 identity provider of the publishing
// platform: consent URL, code exchange and userinfo lookup.
type AuthProvider interface {
	// ProviderName returns the name of this provider (e.g. "linkedin").
	ProviderName() string

	// AuthURL returns the full OAuth2 authorization URL for redirecting the user.
	AuthURL(state string) string

	// ExchangeCode exchanges an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (*domain.TokenPair, error)

	// UserID returns the subject identifier of the token's owner.
	UserID(ctx context.Context, accessToken string) (string, error)
}

// SessionValidator is the "am I still authenticated" check. Session returns
// the token that passed validation.
type SessionValidator interface {
	Validate(ctx context.Context) bool
	Session(ctx context.Context) (*domain.Token, bool)
}
