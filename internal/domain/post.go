package domain

// GenerationRequest describes what a post should be generated from.
// Description and ContentURL are alternatives; ContentURL wins when both are set.
type GenerationRequest struct {
	Description string `json:"description,omitempty"`
	ContentURL  string `json:"content_url,omitempty"`
	Commentary  string `json:"commentary,omitempty"`
}

// GenerationResult is a draft post. Text is never empty.
type GenerationResult struct {
	Text     string `json:"post"`
	ImageURL string `json:"image_url,omitempty"`
}

// UploadTicket is the outcome of registering an image upload: the remote asset
// URN and the short-lived URL its bytes must be PUT to.
type UploadTicket struct {
	Asset     string `json:"asset"`
	UploadURL string `json:"upload_url"`
}

// PublishResult is returned only when the whole publish pipeline succeeded.
type PublishResult struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id"`
	PostURL string `json:"post_url"`
}

// Post lifecycle, visibility and media category values used in UGC payloads.
const (
	LifecyclePublished = "PUBLISHED"
	VisibilityPublic   = "PUBLIC"
	MediaCategoryNone  = "NONE"
	MediaCategoryImage = "IMAGE"
)

// UGCPost is the content-creation payload.
type UGCPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent SpecificContent `json:"specificContent"`
	Visibility      PostVisibility  `json:"visibility"`
}

// SpecificContent wraps the share content block.
type SpecificContent struct {
	ShareContent ShareContent `json:"com.linkedin.ugc.ShareContent"`
}

// ShareContent carries commentary and optional media.
type ShareContent struct {
	ShareCommentary    ShareText    `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []ShareMedia `json:"media,omitempty"`
}

// ShareText is a plain text holder.
type ShareText struct {
	Text string `json:"text"`
}

// ShareMedia attaches an uploaded asset to a post.
type ShareMedia struct {
	Status string    `json:"status"`
	Media  string    `json:"media"`
	Title  ShareText `json:"title"`
}

// PostVisibility controls who can see the post.
type PostVisibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// NewUGCPost builds a published, public post. An empty asset leaves the media
// category at NONE.
func NewUGCPost(authorURN, text, asset string) UGCPost {
	content := ShareContent{
		ShareCommentary:    ShareText{Text: text},
		ShareMediaCategory: MediaCategoryNone,
	}
	if asset != "" {
		content.ShareMediaCategory = MediaCategoryImage
		content.Media = []ShareMedia{{
			Status: "READY",
			Media:  asset,
			Title:  ShareText{Text: "LinkedIn Post Image"},
		}}
	}
	return UGCPost{
		Author:          authorURN,
		LifecycleState:  LifecyclePublished,
		SpecificContent: SpecificContent{ShareContent: content},
		Visibility:      PostVisibility{MemberNetworkVisibility: VisibilityPublic},
	}
}
