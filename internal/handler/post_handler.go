package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/middleware"
	"github.com/arturoeanton/postpilot/internal/port"
)

// Generator drafts posts.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult
}

// Publisher commits posts to the platform.
type Publisher interface {
	Publish(ctx context.Context, text, imageSource string) (*domain.PublishResult, error)
}

// PostHandler handles post generation and publishing.
type PostHandler struct {
	generator Generator
	publisher Publisher
	images    *ImageHandler
	audit     middleware.AuditWriter
}

// NewPostHandler creates a new post handler. images resolves uploaded image
// locations and may be nil when only remote images are accepted. Generation
// and publishing are audited through audit when it is not nil.
func NewPostHandler(generator Generator, publisher Publisher, images *ImageHandler, audit middleware.AuditWriter) *PostHandler {
	return &PostHandler{generator: generator, publisher: publisher, images: images, audit: audit}
}

// Register sets up post routes.
func (h *PostHandler) Register(router fiber.Router) {
	router.Post("/generate-post", h.Generate)
	router.Post("/post-to-linkedin", h.Publish)
}

// Generate drafts a post. It always answers 200 with a non-empty post.
func (h *PostHandler) Generate(c fiber.Ctx) error {
	var req domain.GenerationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	res := h.generator.Generate(c.Context(), req)
	recordAction(c, h.audit, domain.AuditActionGenerate, "post", req.ContentURL, map[string]any{
		"from_url":   req.ContentURL != "",
		"chars":      len(res.Text),
		"with_image": res.ImageURL != "",
	})
	return c.JSON(res)
}

// Publish posts the given text with an optional image.
func (h *PostHandler) Publish(c fiber.Ctx) error {
	var body struct {
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if strings.TrimSpace(body.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	source := body.ImageURL
	if source != "" && h.images != nil {
		resolved, err := h.images.Resolve(source)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		source = resolved
	}

	res, err := h.publisher.Publish(c.Context(), body.Content, source)
	if err != nil {
		recordAction(c, h.audit, domain.AuditActionPublish, "post", "", map[string]any{"success": false, "error": err.Error()})
		return publishError(c, err)
	}
	recordAction(c, h.audit, domain.AuditActionPublish, "post", res.PostID, map[string]any{"success": true, "with_image": source != ""})
	return c.JSON(res)
}

// publishError maps publish failure kinds to HTTP responses.
func publishError(c fiber.Ctx, err error) error {
	var pce *port.PostCreationError
	switch {
	case errors.Is(err, port.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated with LinkedIn",
			"kind":  "unauthenticated",
		})
	case errors.As(err, &pce):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"kind":   "post_creation_failed",
			"status": pce.Status,
			"body":   pce.Body,
		})
	case errors.Is(err, port.ErrPostCreationFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "kind": "post_creation_failed"})
	case errors.Is(err, port.ErrAssetRegistrationFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "kind": "asset_registration_failed"})
	case errors.Is(err, port.ErrAssetUploadFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "kind": "asset_upload_failed"})
	default:
		slog.Error("publish failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
