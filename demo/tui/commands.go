package tui

import (
	"wepub/types"

	tea "github.com/charmbracelet/bubbletea"
)

// composeArticle creates a command that extracts the article and builds a
// publish request from it
func composeArticle(articleURL string) tea.Cmd {
	return func() tea.Msg {
		req, err := ComposeFromURL(articleURL)
		return ComposedMsg{Request: req, Err: err}
	}
}

// publishArticle creates a command that submits the request to the relay
func publishArticle(client *RelayClient, req types.PublishRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Publish(req)
		return PublishedMsg{Response: resp, Err: err}
	}
}
