package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/port"
)

// OAuthFlow drives the token lifecycle: consent URL, code exchange, identity
// resolution, persistence and re-validation. The token store is the only
// holder of the token.
type OAuthFlow struct {
	provider     port.AuthProvider
	store        port.TokenStore
	state        string
	enforceState bool
}

// OAuthOption configures an OAuthFlow.
type OAuthOption func(*OAuthFlow)

// WithStateEnforcement makes CheckState reject callbacks whose state does not
// match the one issued by AuthorizationURL.
func WithStateEnforcement(enforce bool) OAuthOption {
	return func(f *OAuthFlow) { f.enforceState = enforce }
}

// NewOAuthFlow creates a flow with a fresh state nonce.
func NewOAuthFlow(provider port.AuthProvider, store port.TokenStore, opts ...OAuthOption) *OAuthFlow {
	f := &OAuthFlow{
		provider: provider,
		store:    store,
		state:    generateState(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the nonce bound to this flow's authorization requests.
func (f *OAuthFlow) State() string {
	return f.state
}

// AuthorizationURL returns the provider consent URL carrying this flow's state.
func (f *OAuthFlow) AuthorizationURL() string {
	return f.provider.AuthURL(f.state)
}

// CheckState compares a callback state with the issued one. Mismatches are
// always logged; they are rejected only when enforcement is on.
func (f *OAuthFlow) CheckState(state string) error {
	if state == f.state {
		return nil
	}
	slog.Warn("oauth callback state does not match issued state", "enforced", f.enforceState)
	if f.enforceState {
		return port.ErrStateMismatch
	}
	return nil
}

// ExchangeCode trades an authorization code for a token and resolves its
// owner. The token is persisted only when both steps succeed.
func (f *OAuthFlow) ExchangeCode(ctx context.Context, code string) (*domain.Token, error) {
	pair, err := f.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrAuthExchangeFailed, err)
	}
	if pair == nil || pair.AccessToken == "" {
		return nil, fmt.Errorf("%w: response missing access_token", port.ErrAuthExchangeFailed)
	}

	userID, err := f.ResolveIdentity(ctx, pair.AccessToken)
	if err != nil {
		return nil, err
	}

	tok := &domain.Token{AccessToken: pair.AccessToken, UserID: userID}
	if err := f.store.Save(ctx, tok); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	slog.Info("user authenticated", "provider", f.provider.ProviderName(), "user_id", userID)
	return tok, nil
}

// ResolveIdentity returns the user id owning accessToken.
func (f *OAuthFlow) ResolveIdentity(ctx context.Context, accessToken string) (string, error) {
	userID, err := f.provider.UserID(ctx, accessToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", port.ErrIdentityResolutionFailed, err)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: empty subject", port.ErrIdentityResolutionFailed)
	}
	return userID, nil
}

// Validate re-resolves the identity of the stored token. It never fails:
// any problem reports false.
func (f *OAuthFlow) Validate(ctx context.Context) bool {
	_, ok := f.Session(ctx)
	return ok
}

// Session loads the stored token and re-resolves its owner. It returns the
// token it checked, so callers act on exactly the record that was validated.
// A changed identity is written back to the store.
func (f *OAuthFlow) Session(ctx context.Context) (*domain.Token, bool) {
	tok, err := f.Token(ctx)
	if err != nil {
		slog.Error("load token for validation", "error", err)
		return nil, false
	}
	if !tok.Valid() {
		return nil, false
	}

	userID, err := f.ResolveIdentity(ctx, tok.AccessToken)
	if err != nil {
		slog.Warn("stored token failed validation", "error", err)
		return nil, false
	}
	if userID == tok.UserID {
		return tok, true
	}

	refreshed := &domain.Token{AccessToken: tok.AccessToken, UserID: userID}
	if err := f.store.Save(ctx, refreshed); err != nil {
		slog.Error("persist refreshed identity", "error", err)
	}
	return refreshed, true
}

// Token returns the stored token. The store is read on every call so records
// written by other processes are seen. A nil token with a nil error means not
// authenticated.
func (f *OAuthFlow) Token(ctx context.Context) (*domain.Token, error) {
	tok, err := f.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return tok, nil
}

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
