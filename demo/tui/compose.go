package tui

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"wepub/types"
)

const composeTimeout = 30 * time.Second

var (
	imgTagRe  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	srcAttrRe = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']+)["']`)
)

// ComposeFromURL extracts an article with readability and shapes it into a
// publish request: inline <img> tags become {imageN} placeholders with
// their sources collected in order, and the article's lead image becomes
// the cover. Credentials come from WECHAT_APP_ID / WECHAT_APP_SECRET.
func ComposeFromURL(articleURL string) (types.PublishRequest, error) {
	appID := strings.TrimSpace(os.Getenv("WECHAT_APP_ID"))
	appSecret := strings.TrimSpace(os.Getenv("WECHAT_APP_SECRET"))
	if appID == "" || appSecret == "" {
		return types.PublishRequest{}, fmt.Errorf("WECHAT_APP_ID and WECHAT_APP_SECRET must be set")
	}

	article, err := readability.FromURL(articleURL, composeTimeout)
	if err != nil {
		return types.PublishRequest{}, fmt.Errorf("readability extraction failed: %w", err)
	}

	content, imageURLs := placeholderizeImages(article.Content)

	cover := article.Image
	if cover == "" && len(imageURLs) > 0 {
		cover = imageURLs[0]
	}
	if cover == "" {
		return types.PublishRequest{}, fmt.Errorf("article has no usable cover image")
	}

	author := strings.TrimSpace(article.Byline)
	if author == "" {
		author = "wepub demo"
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = articleURL
	}

	return types.PublishRequest{
		AppID:            appID,
		AppSecret:        appSecret,
		Title:            title,
		Author:           author,
		ContentHTML:      content,
		CoverImageURL:    cover,
		ContentImageURLs: imageURLs,
	}, nil
}

// placeholderizeImages rewrites each <img> tag with a usable src into the
// relay's positional placeholder and returns the collected sources in
// placeholder order. Tags without a src are dropped.
func placeholderizeImages(html string) (string, []string) {
	var urls []string
	rewritten := imgTagRe.ReplaceAllStringFunc(html, func(tag string) string {
		m := srcAttrRe.FindStringSubmatch(tag)
		if m == nil || !strings.HasPrefix(m[1], "http") {
			return ""
		}
		placeholder := fmt.Sprintf("{image%d}", len(urls))
		urls = append(urls, m[1])
		return placeholder
	})
	return rewritten, urls
}
