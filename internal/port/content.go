package port

import (
	"context"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// ContentAnalyzer turns a content URL into structured information.
// Implementations degrade to domain.FailedContentInfo instead of failing,
// but callers still handle a returned error.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, url string) (*domain.ContentInfo, error)
}

// ImageLookup finds an illustrative image URL for a topic. An empty string
// with a nil error means nothing was found.
type ImageLookup interface {
	FindImage(ctx context.Context, topic string) (string, error)
}

// ImageLoader resolves an image source (local path or URL) to raw bytes.
type ImageLoader interface {
	Load(ctx context.Context, source string) ([]byte, error)
}
