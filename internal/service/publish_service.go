package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/port"
)

// PostPublisher commits a finished post to the platform. Steps run strictly
// in order and each failure aborts the rest.
//
// Publish is not idempotent: if the connection drops after the post request
// is sent, the post may exist remotely and a retry creates a duplicate.
type PostPublisher struct {
	auth     port.SessionValidator
	platform port.SocialPlatform
	images   port.ImageLoader
}

// NewPostPublisher wires a publisher.
func NewPostPublisher(auth port.SessionValidator, platform port.SocialPlatform, images port.ImageLoader) *PostPublisher {
	return &PostPublisher{
		auth:     auth,
		platform: platform,
		images:   images,
	}
}

// Publish posts text, with the image at imageSource attached when it is not
// empty. imageSource is a local path or an http(s) URL.
func (p *PostPublisher) Publish(ctx context.Context, text, imageSource string) (*domain.PublishResult, error) {
	// The author and bearer come from the record that was just validated.
	tok, ok := p.auth.Session(ctx)
	if !ok || !tok.Valid() || tok.UserID == "" {
		return nil, port.ErrUnauthenticated
	}
	author := domain.PersonURN(tok.UserID)
	slog.Info("publishing post", "author", author, "with_image", imageSource != "")

	var (
		asset string
		err   error
	)
	if imageSource != "" {
		asset, err = p.uploadImage(ctx, tok.AccessToken, author, imageSource)
		if err != nil {
			return nil, err
		}
	}

	result, err := p.platform.CreatePost(ctx, tok.AccessToken, domain.NewUGCPost(author, text, asset))
	if err != nil {
		slog.Error("post creation failed", "error", err)
		return nil, asKind(port.ErrPostCreationFailed, err)
	}

	slog.Info("post published", "post_id", result.PostID, "post_url", result.PostURL)
	return result, nil
}

// uploadImage runs the two-phase upload and returns the asset URN only once
// the bytes have been accepted.
func (p *PostPublisher) uploadImage(ctx context.Context, accessToken, owner, source string) (string, error) {
	ticket, err := p.platform.RegisterUpload(ctx, accessToken, owner)
	if err != nil {
		return "", asKind(port.ErrAssetRegistrationFailed, err)
	}
	if ticket == nil || ticket.Asset == "" || ticket.UploadURL == "" {
		return "", fmt.Errorf("%w: incomplete upload ticket", port.ErrAssetRegistrationFailed)
	}

	data, err := p.images.Load(ctx, source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", port.ErrAssetUploadFailed, err)
	}

	if err := p.platform.UploadImage(ctx, accessToken, ticket.UploadURL, data); err != nil {
		return "", asKind(port.ErrAssetUploadFailed, err)
	}
	slog.Info("image uploaded", "asset", ticket.Asset, "bytes", len(data))
	return ticket.Asset, nil
}

// asKind makes sure err matches kind under errors.Is.
func asKind(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
