package port

import (
	"context"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// TokenStore is durable single-record storage for the OAuth token.
// Load returns nil, nil when no usable record exists. Implementations do not
// serialize a Load/Save pair across callers.
type TokenStore interface {
	Load(ctx context.Context) (*domain.Token, error)
	Save(ctx context.Context, token *domain.Token) error
}
