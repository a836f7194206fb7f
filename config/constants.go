package config

import (
	"os"
	"strings"
	"time"
)

// Default configuration values
const (
	// DefaultAPIBaseURL is the WeChat official-account API root.
	DefaultAPIBaseURL = "https://api.weixin.qq.com/cgi-bin"

	// RequestTimeout bounds every outbound call to the platform,
	// including image downloads.
	RequestTimeout = 10 * time.Second

	// DefaultPublishMarker is reported when freepublish/submit succeeds
	// but omits a publish_id.
	DefaultPublishMarker = "published"
)

// APIBaseURL resolves the WeChat API base URL.
// WECHAT_API_BASE_URL overrides the default, which lets tests and mock
// gateways stand in for the real platform.
func APIBaseURL() string {
	if v := strings.TrimSpace(os.Getenv("WECHAT_API_BASE_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultAPIBaseURL
}
