package domain

// ContentType classifies analyzed content. The set is closed.
type ContentType string

// Known content types.
const (
	ContentArticle ContentType = "article"
	ContentVideo   ContentType = "video"
	ContentGeneric ContentType = "generic"
)

// ContentInfo is the structured result of analyzing a content URL.
type ContentInfo struct {
	Type        ContentType `json:"type"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Content     string      `json:"content,omitempty"`
	KeyPoints   []string    `json:"key_points,omitempty"`
	Topic       string      `json:"topic,omitempty"`
}

// FailedContentInfo is what analysis degrades to when the URL cannot be read.
func FailedContentInfo(url string) *ContentInfo {
	return &ContentInfo{
		Type:      ContentGeneric,
		URL:       url,
		Title:     "Content Analysis Failed",
		Content:   "Content from: " + url,
		KeyPoints: []string{"Unable to analyze content"},
		Topic:     "general",
	}
}
