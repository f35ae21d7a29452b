package service

import (
	"regexp"
	"strings"
)

// referenceMarkers signal that the text already points at its source.
// Matching is case-insensitive.
var referenceMarkers = []string{"read more:", "check it out:", "link:"}

// urlPattern finds links, which are left untouched by punctuation and emoji
// rewrites.
var urlPattern = regexp.MustCompile(`https?://\S+`)

const aiEmoji = "🤖"

// topicEmoji is checked in order; the first match prefixes the post.
var topicEmoji = []struct {
	emoji string
	match func(text, lower string) bool
}{
	{aiEmoji, func(text, lower string) bool {
		return strings.Contains(text, "AI") || strings.Contains(lower, "artificial intelligence")
	}},
	{"💻", func(_, lower string) bool { return strings.Contains(lower, "tech") }},
	{"💡", func(_, lower string) bool { return strings.Contains(lower, "innovation") }},
	{"📊", func(_, lower string) bool { return strings.Contains(lower, "data") }},
	{"🔬", func(_, lower string) bool { return strings.Contains(lower, "research") }},
	{"🌐", func(_, lower string) bool {
		return strings.Contains(lower, "open source") || strings.Contains(lower, "open-source")
	}},
	{"🎓", func(_, lower string) bool {
		return strings.Contains(lower, "student") || strings.Contains(lower, "education")
	}},
}

var brandEmoji = []struct{ word, suffix string }{
	{"Meta", " 🚀"},
	{"model", " 🤖"},
	{"release", " 🎉"},
}

// Formatter applies the house style to generated text. Format is idempotent:
// running it on its own output changes nothing.
type Formatter struct {
	Enthusiasm float64
}

// Format strips bold markers, adds a topic emoji, applies enthusiasm
// punctuation and brand emoji, and appends a "Read more" line for contentURL
// unless the text already carries a reference. Links are kept verbatim.
func (f Formatter) Format(text, contentURL string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = prefixTopicEmoji(text)
	aiTopic := strings.HasPrefix(strings.TrimLeft(text, " \t\n"), aiEmoji+" ")

	text = outsideURLs(text, func(s string) string {
		s = f.punctuate(s)
		for _, b := range brandEmoji {
			s = appendAfter(s, b.word, b.suffix)
		}
		if aiTopic {
			s = appendAfter(s, "learning", " 🧠")
		}
		return s
	})

	text = strings.TrimSpace(text)
	if contentURL != "" && !hasReference(text) {
		if text != "" {
			text += "\n\n"
		}
		text += "Read more: " + contentURL
	}
	return text
}

func (f Formatter) punctuate(s string) string {
	switch {
	case f.Enthusiasm > 0.7:
		s = strings.ReplaceAll(s, ".", "! ✨")
		return appendAfter(s, "?", " 🤔")
	case f.Enthusiasm > 0.4:
		s = strings.ReplaceAll(s, ".", "! 👏")
		return appendAfter(s, "?", " 💭")
	default:
		return s
	}
}

func hasReference(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range referenceMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// outsideURLs applies fn to every stretch of s that is not a link.
func outsideURLs(s string, fn func(string) string) string {
	locs := urlPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return fn(s)
	}
	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(fn(s[prev:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(fn(s[prev:]))
	return b.String()
}

// prefixTopicEmoji matches keywords outside links so an appended reference
// never changes the choice.
func prefixTopicEmoji(s string) string {
	trimmed := strings.TrimLeft(s, " \t\n")
	for _, te := range topicEmoji {
		if strings.HasPrefix(trimmed, te.emoji+" ") {
			return s
		}
	}
	plain := urlPattern.ReplaceAllString(s, " ")
	lower := strings.ToLower(plain)
	for _, te := range topicEmoji {
		if te.match(plain, lower) {
			return te.emoji + " " + s
		}
	}
	return s
}

// appendAfter inserts suffix after every occurrence of word that is not
// already followed by it.
func appendAfter(s, word, suffix string) string {
	if !strings.Contains(s, word) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, word)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(word)
		b.WriteString(s[:end])
		s = s[end:]
		if !strings.HasPrefix(s, suffix) {
			b.WriteString(suffix)
		}
	}
}
