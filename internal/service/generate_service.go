package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arturoeanton/postpilot/internal/domain"
	"github.com/arturoeanton/postpilot/internal/port"
)

const (
	defaultImageTopic  = "technology"
	defaultDescription = "recent developments in technology"
)

// Generator produces draft posts. Generate never fails: provider and
// collaborator errors degrade to fallbacks.
type Generator struct {
	ai        port.AIProvider
	analyzer  port.ContentAnalyzer
	images    port.ImageLookup
	prompts   PromptBuilder
	formatter Formatter
}

// NewGenerator creates a generator with the given voice.
func NewGenerator(ai port.AIProvider, analyzer port.ContentAnalyzer, images port.ImageLookup, personality domain.Personality, user domain.UserContext) *Generator {
	return &Generator{
		ai:        ai,
		analyzer:  analyzer,
		images:    images,
		prompts:   PromptBuilder{Personality: personality, User: user},
		formatter: Formatter{Enthusiasm: personality.Enthusiasm},
	}
}

// Generate drafts a post for req. The returned text is never empty; the
// image URL is best-effort.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	prompt, topic := g.buildPrompt(ctx, req)

	slog.Info("generating post", "model", g.ai.ModelName(), "from_url", req.ContentURL != "")
	text := g.formatter.Format(g.complete(ctx, prompt), req.ContentURL)
	if strings.TrimSpace(text) == "" {
		text = g.formatter.Format(FallbackFor(prompt), req.ContentURL)
	}

	return domain.GenerationResult{
		Text:     text,
		ImageURL: g.findImage(ctx, topic),
	}
}

func (g *Generator) buildPrompt(ctx context.Context, req domain.GenerationRequest) (prompt, topic string) {
	if req.ContentURL != "" {
		info, err := g.analyzer.Analyze(ctx, req.ContentURL)
		if err != nil || info == nil {
			slog.Error("content analysis failed, using URL as description", "url", req.ContentURL, "error", err)
			return g.prompts.ForDescription(req.ContentURL, req.Commentary), defaultImageTopic
		}
		topic = info.Topic
		if topic == "" {
			topic = defaultImageTopic
		}
		return g.prompts.ForContent(info, req.Commentary), topic
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultDescription
		topic = defaultImageTopic
	} else {
		topic = description
	}
	return g.prompts.ForDescription(description, req.Commentary), topic
}

// complete calls the provider once and substitutes the fallback on any
// failure.
func (g *Generator) complete(ctx context.Context, prompt string) string {
	out, err := g.ai.Chat(ctx, systemPrompt, prompt)
	if err == nil && strings.TrimSpace(out) == "" {
		err = fmt.Errorf("empty completion")
	}
	if err != nil {
		slog.Warn("generation provider failed", "error", fmt.Errorf("%w: %w", port.ErrGenerationDegraded, err))
		return FallbackFor(prompt)
	}
	return out
}

func (g *Generator) findImage(ctx context.Context, topic string) string {
	if g.images == nil {
		return ""
	}
	imageURL, err := g.images.FindImage(ctx, topic)
	if err != nil {
		slog.Warn("image lookup failed", "topic", topic, "error", err)
		return ""
	}
	return imageURL
}
