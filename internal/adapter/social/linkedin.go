package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/port"
)

const (
	registerUploadPath = "/v2/assets?action=registerUpload"
	ugcPostsPath       = "/v2/ugcPosts"
	feedImageRecipe    = "urn:li:digitalmediaRecipe:feedshare-image"
	uploadMechanism    = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"
	postURLPrefix      = "https://www.linkedin.com/feed/update/"
	restliVersion      = "2.0.0"
	linkedInVersion    = "202304"
)

// LinkedInPlatform implements port.SocialPlatform against the LinkedIn
// assets and UGC posts APIs.
type LinkedInPlatform struct {
	baseURL    string
	httpClient *http.Client
}

// NewLinkedInPlatform creates a client for the API rooted at baseURL
// (e.g. https://api.linkedin.com).
func NewLinkedInPlatform(baseURL string) *LinkedInPlatform {
	return &LinkedInPlatform{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type registerUploadRequest struct {
	RegisterUploadRequest struct {
		Recipes              []string              `json:"recipes"`
		Owner                string                `json:"owner"`
		ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
	} `json:"registerUploadRequest"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

// RegisterUpload registers a feed image owned by ownerURN.
func (l *LinkedInPlatform) RegisterUpload(ctx context.Context, accessToken, ownerURN string) (*domain.UploadTicket, error) {
	var payload registerUploadRequest
	payload.RegisterUploadRequest.Recipes = []string{feedImageRecipe}
	payload.RegisterUploadRequest.Owner = ownerURN
	payload.RegisterUploadRequest.ServiceRelationships = []serviceRelationship{{
		RelationshipType: "OWNER",
		Identifier:       "urn:li:userGeneratedContent",
	}}

	resp, body, err := l.postJSON(ctx, accessToken, registerUploadPath, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrAssetRegistrationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", port.ErrAssetRegistrationFailed, resp.StatusCode, string(body))
	}

	var out registerUploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", port.ErrAssetRegistrationFailed, err)
	}
	ticket := &domain.UploadTicket{
		Asset:     out.Value.Asset,
		UploadURL: out.Value.UploadMechanism[uploadMechanism].UploadURL,
	}
	if ticket.Asset == "" || ticket.UploadURL == "" {
		return nil, fmt.Errorf("%w: response missing asset or upload URL", port.ErrAssetRegistrationFailed)
	}
	return ticket, nil
}

// UploadImage PUTs raw bytes to the upload URL. Only 201 Created counts as
// success.
func (l *LinkedInPlatform) UploadImage(ctx context.Context, accessToken, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", port.ErrAssetUploadFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", port.ErrAssetUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", port.ErrAssetUploadFailed, resp.StatusCode, string(body))
	}
	return nil
}

// CreatePost submits the post. Anything but 201 Created is a
// *port.PostCreationError carrying the platform's status and body.
func (l *LinkedInPlatform) CreatePost(ctx context.Context, accessToken string, post domain.UGCPost) (*domain.PublishResult, error) {
	resp, body, err := l.postJSON(ctx, accessToken, ugcPostsPath, post)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrPostCreationFailed, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, &port.PostCreationError{Status: resp.StatusCode, Body: string(body)}
	}

	var out struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &out)
	id := out.ID
	if id == "" {
		id = resp.Header.Get("X-RestLi-Id")
	}

	result := &domain.PublishResult{Success: true, PostID: id}
	if id != "" {
		result.PostURL = postURLPrefix + id
	}
	return result, nil
}

// postJSON sends an authenticated Rest.li JSON request and returns the
// response with its fully read body.
func (l *LinkedInPlatform) postJSON(ctx context.Context, accessToken, path string, payload any) (*http.Response, []byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", restliVersion)
	req.Header.Set("LinkedIn-Version", linkedInVersion)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, body, nil
}
