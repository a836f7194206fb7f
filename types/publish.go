package types

// PublishRequest is the inbound payload for POST /publish.
// Credentials ride along with the article so the relay never stores them;
// every request performs a fresh token exchange.
type PublishRequest struct {
	AppID            string   `json:"APP_ID" binding:"required"`
	AppSecret        string   `json:"APP_SECRET" binding:"required"`
	Title            string   `json:"title" binding:"required"`
	Author           string   `json:"author" binding:"required"`
	ContentHTML      string   `json:"content_html" binding:"required"`
	CoverImageURL    string   `json:"cover_image_url" binding:"required"`
	ContentImageURLs []string `json:"content_image_urls"`
}

// PublishResult aggregates every identifier the workflow produced.
// ContentMediaIDs maps placeholder names ("image0", "image1", ...) to the
// media id of each content image that uploaded successfully.
type PublishResult struct {
	DraftMediaID    string            `json:"draft_media_id"`
	CoverMediaID    string            `json:"cover_media_id"`
	ContentMediaIDs map[string]string `json:"content_media_ids"`
	PublishID       string            `json:"publish_id"`
}

// PublishResponse is the success envelope returned to the caller.
type PublishResponse struct {
	Status          string            `json:"status"`
	DraftMediaID    string            `json:"draft_media_id"`
	CoverMediaID    string            `json:"cover_media_id"`
	ContentMediaIDs map[string]string `json:"content_media_ids"`
	PublishID       string            `json:"publish_id"`
}
