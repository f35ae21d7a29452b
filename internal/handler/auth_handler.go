package handler

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/middleware"
)

// Authenticator is the OAuth flow as seen by HTTP handlers.
type Authenticator interface {
	AuthorizationURL() string
	CheckState(state string) error
	ExchangeCode(ctx context.Context, code string) (*domain.Token, error)
	Validate(ctx context.Context) bool
}

// AuthHandler handles the LinkedIn login endpoints.
type AuthHandler struct {
	auth        Authenticator
	frontendURL string
	audit       middleware.AuditWriter
}

// NewAuthHandler creates a new auth handler. Logins are audited through
// audit when it is not nil.
func NewAuthHandler(auth Authenticator, frontendURL string, audit middleware.AuditWriter) *AuthHandler {
	return &AuthHandler{auth: auth, frontendURL: frontendURL, audit: audit}
}

// Register sets up auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Get("/linkedin", h.Login)
	auth.Get("/callback", h.Callback)
	auth.Get("/status", h.Status)
}

// Login returns the consent URL the frontend should send the user to.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"auth_url": h.auth.AuthorizationURL()})
}

// Callback completes the code exchange and redirects back to the frontend
// with the outcome in the query string.
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	if msg := c.Query("error"); msg != "" {
		return h.redirect(c, "auth_error", msg)
	}

	code := c.Query("code")
	if code == "" {
		return h.redirect(c, "auth_error", "missing authorization code")
	}
	if err := h.auth.CheckState(c.Query("state")); err != nil {
		return h.redirect(c, "auth_error", err.Error())
	}

	tok, err := h.auth.ExchangeCode(c.Context(), code)
	if err != nil {
		slog.Error("oauth callback failed", "error", err)
		recordAction(c, h.audit, domain.AuditActionLogin, "linkedin", "", map[string]any{"success": false, "error": err.Error()})
		return h.redirect(c, "auth_error", err.Error())
	}
	recordAction(c, h.audit, domain.AuditActionLogin, "linkedin", tok.UserID, map[string]any{"success": true})
	return h.redirect(c, "auth_success", "true")
}

// Status reports whether a validated token is held.
func (h *AuthHandler) Status(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"authenticated": h.auth.Validate(c.Context())})
}

func (h *AuthHandler) redirect(c fiber.Ctx, key, value string) error {
	q := url.Values{}
	q.Set(key, value)
	return c.Redirect().Status(fiber.StatusFound).To(h.frontendURL + "/?" + q.Encode())
}
