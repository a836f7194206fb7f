// Package wechat is a thin client for the WeChat official-account
// publishing API: token exchange, permanent media upload, draft creation
// and freepublish submission.
package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"wepub/config"
)

const (
	uploadFieldName = "media"
	uploadFilename  = "image.jpg"

	// The declared upload type is fixed regardless of the actual source
	// format; the platform accepts JPEG-labelled payloads for any image.
	uploadContentType = "image/jpeg"

	// contentSourceURL is the static "read original" link stamped on
	// every draft.
	contentSourceURL = "https://openai.com"
)

// Client talks to the WeChat official-account API. All calls are bounded
// by the configured request timeout and carry no retry logic.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given API base URL. An empty
// baseURL falls back to the configured platform default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.APIBaseURL()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// GetAccessToken exchanges an app id/secret pair for a short-lived access
// token. The token is request-scoped by design: callers must not cache it.
func (c *Client) GetAccessToken(ctx context.Context, appID, appSecret string) (string, error) {
	q := url.Values{}
	q.Set("grant_type", "client_credential")
	q.Set("appid", appID)
	q.Set("secret", appSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/token?"+q.Encode(), nil)
	if err != nil {
		return "", AuthError{Err: err}
	}

	body, err := c.do(req)
	if err != nil {
		return "", AuthError{Err: err}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		// The platform reports auth failures as a 200 with an errcode
		// body; surface the raw body for diagnostics.
		return "", AuthError{Body: string(body)}
	}
	return parsed.AccessToken, nil
}

// UploadImage pushes image bytes into the permanent media library and
// returns the resulting media id.
func (c *Client) UploadImage(ctx context.Context, token string, image []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadFieldName, uploadFilename))
	h.Set("Content-Type", uploadContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", UploadError{Err: err}
	}
	if _, err := part.Write(image); err != nil {
		return "", UploadError{Err: err}
	}
	if err := w.Close(); err != nil {
		return "", UploadError{Err: err}
	}

	q := url.Values{}
	q.Set("access_token", token)
	q.Set("type", "image")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/material/add_material?"+q.Encode(), &buf)
	if err != nil {
		return "", UploadError{Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return "", UploadError{Err: err}
	}

	var parsed struct {
		MediaID string `json:"media_id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.MediaID == "" {
		return "", UploadError{Body: string(body)}
	}
	return parsed.MediaID, nil
}

type draftArticle struct {
	Title              string `json:"title"`
	Author             string `json:"author"`
	Content            string `json:"content"`
	ThumbMediaID       string `json:"thumb_media_id"`
	NeedOpenComment    int    `json:"need_open_comment"`
	OnlyFansCanComment int    `json:"only_fans_can_comment"`
	ContentSourceURL   string `json:"content_source_url"`
}

type draftPayload struct {
	Articles []draftArticle `json:"articles"`
}

// CreateDraft assembles a single-article draft and submits it, returning
// the draft's media id. Title, author and body are passed through
// UnescapeText first; a malformed escape sequence fails the draft stage
// before any network call.
func (c *Client) CreateDraft(ctx context.Context, token, title, author, contentHTML, coverMediaID string) (string, error) {
	title, err := UnescapeText(title)
	if err != nil {
		return "", DraftError{Err: fmt.Errorf("decode title: %w", err)}
	}
	author, err = UnescapeText(author)
	if err != nil {
		return "", DraftError{Err: fmt.Errorf("decode author: %w", err)}
	}
	content, err := UnescapeText(contentHTML)
	if err != nil {
		return "", DraftError{Err: fmt.Errorf("decode content: %w", err)}
	}

	payload := draftPayload{Articles: []draftArticle{{
		Title:              title,
		Author:             author,
		Content:            content,
		ThumbMediaID:       coverMediaID,
		NeedOpenComment:    0,
		OnlyFansCanComment: 0,
		ContentSourceURL:   contentSourceURL,
	}}}

	body, err := c.postJSON(ctx, "/draft/add", token, payload)
	if err != nil {
		return "", DraftError{Err: err}
	}

	var parsed struct {
		MediaID string `json:"media_id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.MediaID == "" {
		return "", DraftError{Body: string(body)}
	}
	return parsed.MediaID, nil
}

// SubmitPublish submits a draft for publication. Success is errcode 0; a
// missing publish_id on success yields the default publish marker.
func (c *Client) SubmitPublish(ctx context.Context, token, draftMediaID string) (string, error) {
	body, err := c.postJSON(ctx, "/freepublish/submit", token, map[string]string{"media_id": draftMediaID})
	if err != nil {
		return "", PublishError{Err: err}
	}

	var parsed struct {
		ErrCode   int         `json:"errcode"`
		ErrMsg    string      `json:"errmsg"`
		PublishID json.Number `json:"publish_id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", PublishError{Err: fmt.Errorf("decode response %s: %w", body, err)}
	}
	if parsed.ErrCode != 0 {
		return "", PublishError{ErrCode: parsed.ErrCode, ErrMsg: parsed.ErrMsg}
	}
	if parsed.PublishID.String() == "" {
		return config.DefaultPublishMarker, nil
	}
	return parsed.PublishID.String(), nil
}

// postJSON marshals payload and POSTs it to path with the access token in
// the query string, returning the raw response body.
func (c *Client) postJSON(ctx context.Context, path, token string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	q := url.Values{}
	q.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+q.Encode(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
