package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// AuditWriter defines how audit records are persisted.
type AuditWriter interface {
	WriteAudit(ctx context.Context, entry domain.AuditLog) error
}

// SlogAuditWriter writes audit records as structured log lines.
type SlogAuditWriter struct {
	logger *slog.Logger
}

// NewSlogAuditWriter returns a writer on logger, or on slog.Default when nil.
func NewSlogAuditWriter(logger *slog.Logger) *SlogAuditWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditWriter{logger: logger.With("component", "audit")}
}

func (w *SlogAuditWriter) WriteAudit(ctx context.Context, e domain.AuditLog) error {
	w.logger.LogAttrs(ctx, slog.LevelInfo, e.Action,
		slog.String("request_id", e.RequestID),
		slog.String("resource", e.Resource),
		slog.String("resource_id", e.ResourceID),
		slog.String("details", e.Details),
		slog.String("ip", e.IP),
		slog.String("user_agent", e.UserAgent),
		slog.Time("at", e.CreatedAt),
	)
	return nil
}

// AuditMiddleware records every request with its outcome and tags it with a
// request id.
func AuditMiddleware(writer AuditWriter) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Fiber reuses context objects, so capture request data up front.
		method := c.Method()
		path := c.Path()
		ip := c.IP()
		userAgent := c.Get(fiber.HeaderUserAgent)
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		details, _ := json.Marshal(map[string]any{
			"method":      method,
			"path":        path,
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})

		entry := domain.AuditLog{
			RequestID:  requestID,
			Action:     domain.AuditActionRequest,
			Resource:   "api",
			ResourceID: path,
			Details:    string(details),
			IP:         ip,
			UserAgent:  userAgent,
			CreatedAt:  start,
		}
		if writeErr := writer.WriteAudit(context.Background(), entry); writeErr != nil {
			slog.Error("failed to write audit log", "error", writeErr)
		}
		return err
	}
}
