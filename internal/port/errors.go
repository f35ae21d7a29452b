package port

import (
	"errors"
	"fmt"
)

// Sentinel errors used across ports.
var (
	ErrConfig                   = errors.New("invalid configuration")
	ErrAuthExchangeFailed       = errors.New("authorization code exchange failed")
	ErrIdentityResolutionFailed = errors.New("identity resolution failed")
	ErrStateMismatch            = errors.New("oauth state mismatch")
	ErrUnauthenticated          = errors.New("not authenticated")
	ErrAssetRegistrationFailed  = errors.New("asset registration failed")
	ErrAssetUploadFailed        = errors.New("asset upload failed")
	ErrPostCreationFailed       = errors.New("post creation failed")

	// ErrGenerationDegraded marks a provider failure that was replaced by a
	// fallback. It is logged, never returned to callers of Generate.
	ErrGenerationDegraded = errors.New("generation degraded to fallback")
)

// PostCreationError carries the platform's response for a rejected post.
type PostCreationError struct {
	Status int
	Body   string
}

func (e *PostCreationError) Error() string {
	return fmt.Sprintf("%s (%d): %s", ErrPostCreationFailed, e.Status, e.Body)
}

func (e *PostCreationError) Unwrap() error {
	return ErrPostCreationFailed
}
