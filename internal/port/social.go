package port

import (
	"context"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// SocialPlatform is the content API of the publishing platform.
type SocialPlatform interface {
	// RegisterUpload announces an image owned by ownerURN and returns the
	// asset URN and upload URL.
	RegisterUpload(ctx context.Context, accessToken, ownerURN string) (*domain.UploadTicket, error)

	// UploadImage PUTs the image bytes to a registered upload URL.
	UploadImage(ctx context.Context, accessToken, uploadURL string, data []byte) error

	// CreatePost submits a post and returns its remote id and URL.
	CreatePost(ctx context.Context, accessToken string, post domain.UGCPost) (*domain.PublishResult, error)
}
