package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/postpilot/internal/domain"
)

func newTestGenerator(ai *fakeAI, analyzer fakeAnalyzer, images *fakeImages) *Generator {
	return NewGenerator(ai, analyzer, images, domain.DefaultPersonality(), domain.DefaultUserContext())
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	enthusiasm := domain.DefaultPersonality().Enthusiasm

	t.Run("provider failure degrades to generic fallback", func(t *testing.T) {
		ai := &fakeAI{err: errBoom}
		images := &fakeImages{url: "https://images.example/q.jpg"}
		g := newTestGenerator(ai, fakeAnalyzer{}, images)

		res := g.Generate(ctx, domain.GenerationRequest{Description: "quantum computing breakthroughs"})

		assert.Equal(t, Formatter{Enthusiasm: enthusiasm}.Format(FallbackGeneric, ""), res.Text)
		assert.Equal(t, "https://images.example/q.jpg", res.ImageURL)
		assert.Equal(t, []string{"quantum computing breakthroughs"}, images.topics)
		require.Len(t, ai.prompts, 1)
	})

	t.Run("empty completion degrades to fallback", func(t *testing.T) {
		ai := &fakeAI{out: "   "}
		g := newTestGenerator(ai, fakeAnalyzer{}, &fakeImages{})

		res := g.Generate(ctx, domain.GenerationRequest{Description: "a short story"})
		assert.Equal(t, Formatter{Enthusiasm: enthusiasm}.Format(FallbackGeneric, ""), res.Text)
	})

	t.Run("successful completion is formatted", func(t *testing.T) {
		ai := &fakeAI{out: "**Meta** shipped a new AI model."}
		g := newTestGenerator(ai, fakeAnalyzer{}, &fakeImages{})

		res := g.Generate(ctx, domain.GenerationRequest{Description: "Llama release", Commentary: "I tried it"})
		assert.True(t, strings.HasPrefix(res.Text, "🤖 "), res.Text)
		assert.NotContains(t, res.Text, "**")
		assert.NotContains(t, res.Text, "Read more:")
		assert.Contains(t, ai.prompts[0], "Llama release")
		assert.Contains(t, ai.prompts[0], "I tried it")
	})

	t.Run("article analysis drives prompt, fallback and topic", func(t *testing.T) {
		info := &domain.ContentInfo{
			Type:      domain.ContentArticle,
			URL:       "https://medium.com/x",
			Title:     "Scaling Go services",
			KeyPoints: []string{"point one"},
			Topic:     "software development",
		}
		ai := &fakeAI{err: errBoom}
		images := &fakeImages{}
		g := newTestGenerator(ai, fakeAnalyzer{info: info}, images)

		res := g.Generate(ctx, domain.GenerationRequest{ContentURL: "https://medium.com/x"})

		assert.Contains(t, ai.prompts[0], "Scaling Go services")
		assert.Equal(t, Formatter{Enthusiasm: enthusiasm}.Format(FallbackArticle, "https://medium.com/x"), res.Text)
		assert.True(t, strings.HasSuffix(res.Text, "Read more: https://medium.com/x"))
		assert.Equal(t, []string{"software development"}, images.topics)
		assert.Empty(t, res.ImageURL)
	})

	t.Run("video analysis picks video fallback", func(t *testing.T) {
		info := &domain.ContentInfo{Type: domain.ContentVideo, Title: "Keynote", Description: "Video by Someone", Topic: "technology"}
		g := newTestGenerator(&fakeAI{err: errBoom}, fakeAnalyzer{info: info}, &fakeImages{})

		res := g.Generate(ctx, domain.GenerationRequest{ContentURL: "https://youtu.be/abc"})
		assert.Equal(t, Formatter{Enthusiasm: enthusiasm}.Format(FallbackVideo, "https://youtu.be/abc"), res.Text)
	})

	t.Run("analyzer error uses URL as description", func(t *testing.T) {
		ai := &fakeAI{out: "Worth a look"}
		images := &fakeImages{}
		g := newTestGenerator(ai, fakeAnalyzer{err: errBoom}, images)

		res := g.Generate(ctx, domain.GenerationRequest{ContentURL: "https://example.com/page"})
		assert.Contains(t, ai.prompts[0], "https://example.com/page")
		assert.Equal(t, "Worth a look\n\nRead more: https://example.com/page", res.Text)
		assert.Equal(t, []string{defaultImageTopic}, images.topics)
	})

	t.Run("image lookup failure leaves text intact", func(t *testing.T) {
		g := newTestGenerator(&fakeAI{out: "Hello there"}, fakeAnalyzer{}, &fakeImages{err: errBoom})

		res := g.Generate(ctx, domain.GenerationRequest{Description: "greetings"})
		assert.Equal(t, "Hello there", res.Text)
		assert.Empty(t, res.ImageURL)
	})

	t.Run("empty request uses default description", func(t *testing.T) {
		ai := &fakeAI{out: "Hi"}
		images := &fakeImages{}
		g := newTestGenerator(ai, fakeAnalyzer{}, images)

		g.Generate(ctx, domain.GenerationRequest{})
		assert.Contains(t, ai.prompts[0], defaultDescription)
		assert.Equal(t, []string{defaultImageTopic}, images.topics)
	})
}

func TestPromptBuilder(t *testing.T) {
	b := PromptBuilder{Personality: domain.DefaultPersonality(), User: domain.DefaultUserContext()}

	t.Run("description prompt carries no content keywords", func(t *testing.T) {
		p := b.ForDescription("new compilers", "")
		assert.Equal(t, FallbackGeneric, FallbackFor(p))
		assert.Contains(t, p, "Computer Science")
		assert.NotContains(t, p, "Personal Commentary")
	})

	t.Run("article prompt includes template", func(t *testing.T) {
		p := b.ForContent(&domain.ContentInfo{Type: domain.ContentArticle, Title: "T", KeyPoints: []string{"a", "b"}, Topic: "technology"}, "my take")
		assert.Contains(t, p, "Key Points: a, b")
		assert.Contains(t, p, "I found this article fascinating")
		assert.Contains(t, p, "my take")
	})

	t.Run("description prompt uses configured generic template", func(t *testing.T) {
		personality := domain.DefaultPersonality()
		personality.Templates[domain.ContentGeneric] = "Sharing something on {topic} today."
		p := PromptBuilder{Personality: personality, User: domain.DefaultUserContext()}.ForDescription("new compilers", "")
		assert.Contains(t, p, "Use this template as a base:\nSharing something on {topic} today.")
	})

	t.Run("generic content is truncated", func(t *testing.T) {
		p := b.ForContent(&domain.ContentInfo{Type: domain.ContentGeneric, Content: strings.Repeat("x", maxPromptContent+100)}, "")
		assert.Contains(t, p, strings.Repeat("x", maxPromptContent)+"...")
		assert.NotContains(t, p, strings.Repeat("x", maxPromptContent+1))
	})
}
