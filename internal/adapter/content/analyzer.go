package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/arturoeanton/postpilot/internal/domain"
)

const (
	maxPageBytes    = 2 << 20
	keyPointMinLen  = 50
	maxKeyPoints    = 3
	defaultTopic    = "technology"
	youTubeOEmbed   = "https://www.youtube.com/oembed"
	vimeoOEmbed     = "https://vimeo.com/api/oembed.json"
	analyzerUAValue = "postpilot/1.0 (+content-analyzer)"
)

// Analyzer implements port.ContentAnalyzer by fetching and reading the page
// behind a URL. It never fails: unreadable content degrades to
// domain.FailedContentInfo.
type Analyzer struct {
	preferredTopics []string
	oembed          map[string]string // host suffix -> oEmbed endpoint
	httpClient      *http.Client
}

// NewAnalyzer creates an analyzer that scores topics against preferredTopics.
func NewAnalyzer(preferredTopics []string) *Analyzer {
	return &Analyzer{
		preferredTopics: preferredTopics,
		oembed: map[string]string{
			"youtube.com": youTubeOEmbed,
			"youtu.be":    youTubeOEmbed,
			"vimeo.com":   vimeoOEmbed,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// DetectContentType classifies a URL by its host.
func DetectContentType(rawURL string) domain.ContentType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.ContentGeneric
	}
	host := strings.ToLower(u.Hostname())

	for _, h := range []string{"youtube.com", "youtu.be", "vimeo.com"} {
		if strings.Contains(host, h) {
			return domain.ContentVideo
		}
	}
	for _, h := range []string{"medium.com", "dev.to", "blog"} {
		if strings.Contains(host, h) {
			return domain.ContentArticle
		}
	}
	return domain.ContentGeneric
}

// Analyze returns structured information about the content at rawURL.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*domain.ContentInfo, error) {
	var (
		info *domain.ContentInfo
		err  error
	)
	switch DetectContentType(rawURL) {
	case domain.ContentArticle:
		info, err = a.analyzeArticle(ctx, rawURL)
	case domain.ContentVideo:
		info, err = a.analyzeVideo(ctx, rawURL)
	default:
		info, err = a.analyzeGeneric(ctx, rawURL)
	}
	if err != nil {
		slog.Error("content analysis failed", "url", rawURL, "error", err)
		return domain.FailedContentInfo(rawURL), nil
	}
	return info, nil
}

func (a *Analyzer) analyzeArticle(ctx context.Context, rawURL string) (*domain.ContentInfo, error) {
	doc, err := a.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var paragraphs []string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "p" {
			if t := collapse(textOf(n)); t != "" {
				paragraphs = append(paragraphs, t)
			}
			return false
		}
		return true
	})
	body := strings.Join(paragraphs, " ")

	return &domain.ContentInfo{
		Type:      domain.ContentArticle,
		URL:       rawURL,
		Title:     pageTitle(doc),
		Content:   body,
		KeyPoints: KeyPoints(body),
		Topic:     a.Topic(body),
	}, nil
}

func (a *Analyzer) analyzeGeneric(ctx context.Context, rawURL string) (*domain.ContentInfo, error) {
	doc, err := a.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	body := collapse(textOf(doc))

	return &domain.ContentInfo{
		Type:    domain.ContentGeneric,
		URL:     rawURL,
		Title:   pageTitle(doc),
		Content: body,
		Topic:   a.Topic(body),
	}, nil
}

func (a *Analyzer) analyzeVideo(ctx context.Context, rawURL string) (*domain.ContentInfo, error) {
	endpoint := a.oembedEndpoint(rawURL)
	if endpoint == "" {
		return nil, fmt.Errorf("no oEmbed endpoint for %s", rawURL)
	}

	q := url.Values{"url": {rawURL}, "format": {"json"}}
	body, err := a.get(ctx, endpoint+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var meta struct {
		Title       string `json:"title"`
		AuthorName  string `json:"author_name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode oEmbed: %w", err)
	}

	description := meta.Description
	if description == "" && meta.AuthorName != "" {
		description = "Video by " + meta.AuthorName
	}
	return &domain.ContentInfo{
		Type:        domain.ContentVideo,
		URL:         rawURL,
		Title:       meta.Title,
		Description: description,
		Topic:       a.Topic(meta.Title + " " + description),
	}, nil
}

func (a *Analyzer) oembedEndpoint(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for suffix, endpoint := range a.oembed {
		if strings.HasSuffix(host, suffix) {
			return endpoint
		}
	}
	return ""
}

// KeyPoints returns the first few sentences long enough to carry an idea.
func KeyPoints(text string) []string {
	var points []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if len(s) > keyPointMinLen {
			points = append(points, s)
			if len(points) == maxKeyPoints {
				break
			}
		}
	}
	return points
}

// Topic picks the preferred topic mentioned most often in text. Ties go to
// the earlier topic in the list.
func (a *Analyzer) Topic(text string) string {
	if len(a.preferredTopics) == 0 {
		return defaultTopic
	}
	lower := strings.ToLower(text)
	best, bestScore := a.preferredTopics[0], -1
	for _, topic := range a.preferredTopics {
		score := strings.Count(lower, strings.ToLower(topic))
		if score > bestScore {
			best, bestScore = topic, score
		}
	}
	return best
}

func (a *Analyzer) fetchHTML(ctx context.Context, rawURL string) (*html.Node, error) {
	body, err := a.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := html.Parse(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (a *Analyzer) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", analyzerUAValue)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// walk visits n and its descendants depth-first; fn returning false skips
// the children of the current node.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func pageTitle(doc *html.Node) string {
	var title string
	walk(doc, func(n *html.Node) bool {
		if title != "" {
			return false
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			title = collapse(textOf(n))
			return false
		}
		return true
	})
	return title
}

// textOf concatenates visible text below n, skipping scripts and styles.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "noscript":
				return false
			case "head":
				return c == n
			}
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
		return true
	})
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
