package image

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
)

const defaultQuery = "technology innovation"

// topicQueries maps topic keywords to search queries; the first match wins.
var topicQueries = []struct {
	keyword string
	query   string
}{
	{"AI", "artificial intelligence technology"},
	{"machine learning", "machine learning visualization"},
	{"data science", "data visualization"},
	{"programming", "coding computer"},
	{"tech", "technology innovation"},
	{"startup", "startup office"},
	{"research", "scientific research"},
	{"education", "education technology"},
	{"open source", "open source code"},
	{"meta", "meta technology"},
	{"llama", "AI model visualization"},
}

// QueryForTopic returns the image search query for a topic.
func QueryForTopic(topic string) string {
	lower := strings.ToLower(topic)
	for _, tq := range topicQueries {
		if strings.Contains(lower, strings.ToLower(tq.keyword)) {
			return tq.query
		}
	}
	return defaultQuery
}

// Unsplash implements port.ImageLookup with the Unsplash search API.
type Unsplash struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewUnsplash creates a lookup client. An empty access key disables lookups.
func NewUnsplash(baseURL, accessKey string) *Unsplash {
	return &Unsplash{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FindImage returns the regular-size URL of the best landscape photo for the
// topic, or "" when nothing is found or lookups are disabled.
func (u *Unsplash) FindImage(ctx context.Context, topic string) (string, error) {
	if u.accessKey == "" {
		slog.Warn("unsplash access key not set, skipping image lookup")
		return "", nil
	}

	query := QueryForTopic(topic)
	params := url.Values{
		"query":       {query},
		"per_page":    {"1"},
		"orientation": {"landscape"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("unsplash: create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unsplash: search failed (%d): %s", resp.StatusCode, string(body))
	}

	var out struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("unsplash: decode: %w", err)
	}
	if len(out.Results) == 0 {
		return "", nil
	}

	slog.Info("found image", "query", query)
	return out.Results[0].URLs.Regular, nil
}
