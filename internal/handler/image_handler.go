package handler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/arturoeanton/postpilot/internal/adapter/media"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageHandler stores uploaded images for later publishing.
type ImageHandler struct {
	dir string
}

// NewImageHandler creates a handler storing files under dir.
func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// Register sets up image routes.
func (h *ImageHandler) Register(router fiber.Router) {
	router.Post("/upload-image", h.Upload)
}

// Upload saves the multipart "file" field under a fresh name and returns
// its location.
func (h *ImageHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image type " + ext})
	}
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	location := filepath.Join(h.dir, uuid.NewString()+ext)
	if err := c.SaveFile(fh, location); err != nil {
		slog.Error("save upload", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store file"})
	}

	slog.Info("image uploaded", "location", location, "bytes", fh.Size)
	return c.JSON(fiber.Map{"location": location})
}

// Resolve checks an image source before publishing. Remote URLs pass through;
// local paths must point inside the upload directory.
func (h *ImageHandler) Resolve(source string) (string, error) {
	if media.IsRemote(source) {
		return source, nil
	}
	dir, err := filepath.Abs(h.dir)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("image %q is outside the upload directory", source)
	}
	return path, nil
}
