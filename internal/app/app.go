// Package app wires configuration, adapters and services into a runnable
// application shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/arturoeanton/postpilot/internal/adapter/ai"
	"github.com/arturoeanton/postpilot/internal/adapter/auth"
	"github.com/arturoeanton/postpilot/internal/adapter/content"
	"github.com/arturoeanton/postpilot/internal/adapter/image"
	"github.com/arturoeanton/postpilot/internal/adapter/media"
	"github.com/arturoeanton/postpilot/internal/adapter/social"
	"github.com/arturoeanton/postpilot/internal/adapter/store"
	"github.com/arturoeanton/postpilot/internal/handler"
	"github.com/arturoeanton/postpilot/internal/middleware"
	"github.com/arturoeanton/postpilot/internal/port"
	"github.com/arturoeanton/postpilot/internal/service"
	"github.com/arturoeanton/postpilot/pkg/config"

	_ "github.com/lib/pq"
)

const version = "1.0.0"

// App holds the wired components.
type App struct {
	Config    *config.Config
	Store     port.TokenStore
	Auth      *service.OAuthFlow
	Generator *service.Generator
	Publisher *service.PostPublisher

	closers []func() error
}

// New builds every component from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	tokenStore, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Store = tokenStore

	personality, err := config.LoadPersonality(cfg.PersonalityFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrConfig, err)
	}
	userCtx, err := config.LoadUserContext(cfg.UserContextFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrConfig, err)
	}
	timeout, err := cfg.GenerationTimeoutDuration()
	if err != nil {
		return nil, err
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	linkedInAuth := auth.NewLinkedInProvider(auth.LinkedInConfig{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURL:  cfg.LinkedInRedirectURL,
		AuthURL:      cfg.LinkedInAuthURL,
		TokenURL:     cfg.LinkedInTokenURL,
		UserInfoURL:  cfg.LinkedInUserInfoURL,
	})
	deepSeek := ai.NewDeepSeekProvider(ai.DeepSeekConfig{
		URL:     cfg.DeepSeekURL,
		Model:   cfg.DeepSeekModel,
		Token:   cfg.DeepSeekAPIKey,
		Timeout: timeout,
	})
	if cfg.DeepSeekAPIKey == "" {
		slog.Warn("DEEPSEEK_API_KEY not set, generation will use fallback posts")
	}
	platform := social.NewLinkedInPlatform(cfg.LinkedInAPIURL)
	analyzer := content.NewAnalyzer(personality.PreferredTopics)
	unsplash := image.NewUnsplash(cfg.UnsplashURL, cfg.UnsplashAccessKey)

	// ── Services ─────────────────────────────────────────────────────────
	a.Auth = service.NewOAuthFlow(linkedInAuth, tokenStore, service.WithStateEnforcement(cfg.EnforceOAuthState))
	a.Generator = service.NewGenerator(deepSeek, analyzer, unsplash, personality, userCtx)
	a.Publisher = service.NewPostPublisher(a.Auth, platform, media.NewLoader())

	return a, nil
}

func (a *App) openStore(ctx context.Context) (port.TokenStore, error) {
	switch a.Config.TokenStore {
	case "postgres":
		pg, err := store.NewPostgresTokenStore(ctx, a.Config.DatabaseURL, a.Config.LinkedInClientID)
		if err != nil {
			return nil, fmt.Errorf("open token store: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		slog.Info("🗄️ Token store ready", "backend", "postgres")
		return pg, nil
	default:
		slog.Info("🗄️ Token store ready", "backend", "file", "path", a.Config.TokenFile)
		return store.NewFileTokenStore(a.Config.TokenFile), nil
	}
}

// Close releases resources held by the components.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Server returns the HTTP front door with every route registered.
func (a *App) Server() *fiber.App {
	cfg := a.Config

	srv := fiber.New(fiber.Config{
		AppName:     cfg.AppName,
		ReadTimeout: 30 * time.Second,
		BodyLimit:   10 * 1024 * 1024,
	})

	srv.Use(recover.New())
	srv.Use(fiberlogger.New())
	srv.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	auditWriter := middleware.NewSlogAuditWriter(nil)
	srv.Use(middleware.AuditMiddleware(auditWriter))

	srv.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": version,
		})
	})

	api := srv.Group("/api")
	images := handler.NewImageHandler(cfg.UploadDir)
	handler.NewAuthHandler(a.Auth, cfg.FrontendURL, auditWriter).Register(api)
	handler.NewPostHandler(a.Generator, a.Publisher, images, auditWriter).Register(api)
	images.Register(api)

	return srv
}
