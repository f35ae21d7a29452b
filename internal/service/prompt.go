package service

import (
	"fmt"
	"strings"

	"github.com/arturoeanton/postpilot/internal/domain"
)

const (
	systemPrompt = "You are a professional LinkedIn content creator with expertise in technology and AI."

	maxPromptContent = 4000

	guidelines = `Guidelines:
1. Write from a student's perspective with strong technical understanding
2. Focus on learning insights and industry implications
3. Keep questions to a minimum (maximum 1 question if needed)
4. Include relevant technical details that showcase your knowledge
5. End with a clear call to action or key takeaway
6. Use a mix of technical and educational language
7. Reference your academic background when relevant
8. Include 2-3 relevant hashtags from the preferred list
9. Write a comprehensive post (300-500 words)`
)

// Fallback posts used when the provider gives nothing usable.
const (
	FallbackArticle = "I found this article interesting and wanted to share it with my network. The key insights are worth discussing. What are your thoughts?"
	FallbackVideo   = "Just watched this video and found it insightful. The content really makes you think about the future of technology. Has anyone else seen this?"
	FallbackGeneric = "Excited to share this content with my network. The insights are valuable for anyone interested in technology and innovation. What are your thoughts?"
)

// FallbackFor picks the fallback post by keyword in the prompt.
func FallbackFor(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "article"):
		return FallbackArticle
	case strings.Contains(lower, "video"):
		return FallbackVideo
	default:
		return FallbackGeneric
	}
}

// PromptBuilder merges content, commentary, personality and user context
// into a provider prompt.
type PromptBuilder struct {
	Personality domain.Personality
	User        domain.UserContext
}

// ForContent builds a prompt from analyzed content.
func (b PromptBuilder) ForContent(info *domain.ContentInfo, commentary string) string {
	var head string
	switch info.Type {
	case domain.ContentArticle:
		head = fmt.Sprintf("Create a LinkedIn post about this article:\nTitle: %s\nKey Points: %s\nTopic: %s",
			info.Title, strings.Join(info.KeyPoints, ", "), info.Topic)
	case domain.ContentVideo:
		head = fmt.Sprintf("Create a LinkedIn post about this video:\nTitle: %s\nDescription: %s",
			info.Title, info.Description)
	default:
		return b.compose(fmt.Sprintf("Create a LinkedIn post about:\n%s", truncate(info.Content, maxPromptContent)),
			commentary, b.Personality.Template(domain.ContentGeneric))
	}
	return b.compose(head, commentary, b.Personality.Template(info.Type))
}

// ForDescription builds a prompt from a plain description, using the
// generic template when one is configured.
func (b PromptBuilder) ForDescription(description, commentary string) string {
	return b.compose(fmt.Sprintf("Create a LinkedIn post about:\n%s", description), commentary,
		b.Personality.Template(domain.ContentGeneric))
}

func (b PromptBuilder) compose(head, commentary, template string) string {
	var sb strings.Builder
	sb.WriteString(head)
	sb.WriteString("\n\n")
	sb.WriteString(b.userContext())

	if commentary = strings.TrimSpace(commentary); commentary != "" {
		sb.WriteString("\nPersonal Commentary:\n")
		sb.WriteString(commentary)
		sb.WriteString("\n")
	}
	if template != "" {
		sb.WriteString("\nUse this template as a base:\n")
		sb.WriteString(template)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(guidelines)
	sb.WriteString("\n\n")
	sb.WriteString(b.personality())
	return sb.String()
}

func (b PromptBuilder) userContext() string {
	u := b.User
	return fmt.Sprintf(`Academic Context:
- Education: %s in %s at %s
- Academic Interests: %s
- Skills: %s

Professional Context:
- Career Goals: %s
- Target Companies: %s
- Internship Experience: %s

Content Style:
- Personal Brand: %s
- Writing Style: %s
- Content Focus: %s
- Tone: %s

Recent Topics: %s
Preferred Hashtags: %s
`,
		u.EducationLevel, u.Major, u.University,
		join(u.AcademicInterests), join(u.Skills),
		join(u.CareerGoals), join(u.TargetCompanies), join(u.InternshipExperience),
		u.PersonalBrand, u.WritingStyle, join(u.ContentFocus), u.Tone,
		join(u.RecentTopics), join(u.PreferredHashtags),
	)
}

func (b PromptBuilder) personality() string {
	p := b.Personality
	return fmt.Sprintf(`Personality traits to incorporate:
- Formality level: %.2f (%s)
- Enthusiasm level: %.2f (%s)
- Humor level: %.2f (%s)
- Expertise level: %.2f (%s)`,
		p.Formality, level(p.Formality),
		p.Enthusiasm, level(p.Enthusiasm),
		p.Humor, level(p.Humor),
		p.Expertise, level(p.Expertise),
	)
}

// level renders a 0..1 weight as words for the model.
func level(w float64) string {
	switch {
	case w >= 0.7:
		return "high"
	case w >= 0.4:
		return "moderate"
	default:
		return "low"
	}
}

func join(items []string) string {
	return strings.Join(items, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
