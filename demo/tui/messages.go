package tui

import "wepub/types"

// ComposedMsg carries the request built from the article URL.
type ComposedMsg struct {
	Request types.PublishRequest
	Err     error
}

// PublishedMsg carries the relay's response.
type PublishedMsg struct {
	Response *types.PublishResponse
	Err      error
}
