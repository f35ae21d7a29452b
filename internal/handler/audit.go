package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/middleware"
)

// recordAction writes an action-level audit entry next to the request-level
// one. A nil writer disables it.
func recordAction(c fiber.Ctx, w middleware.AuditWriter, action, resource, resourceID string, details map[string]any) {
	if w == nil {
		return
	}
	data, _ := json.Marshal(details)
	entry := domain.AuditLog{
		RequestID:  c.GetRespHeader(middleware.RequestIDHeader),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    string(data),
		IP:         c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
		CreatedAt:  time.Now(),
	}
	if err := w.WriteAudit(context.Background(), entry); err != nil {
		slog.Error("failed to write audit log", "action", action, "error", err)
	}
}
