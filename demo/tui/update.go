package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ComposedMsg:
		return m.handleComposed(msg)
	case PublishedMsg:
		return m.handlePublished(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "p", "P":
		if m.State == StateIdle || m.State == StateError {
			m.State = StateComposing
			m.Err = nil
			m = m.AddLog(fmt.Sprintf("Extracting article from %s...", m.ArticleURL))
			return m, composeArticle(m.ArticleURL)
		}
	}
	return m, nil
}

// handleComposed processes extraction completion
func (m Model) handleComposed(msg ComposedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	req := msg.Request
	m.Request = &req
	m.State = StatePublishing
	m = m.AddLog(fmt.Sprintf("Composed %q with %d content images", req.Title, len(req.ContentImageURLs)))
	m = m.AddLog("Submitting to relay...")
	return m, publishArticle(m.RelayClient, req)
}

// handlePublished processes the relay response
func (m Model) handlePublished(msg PublishedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Result = msg.Response
	m.State = StateComplete
	m = m.AddLog(fmt.Sprintf("Published! publish_id: %s", msg.Response.PublishID))
	return m, nil
}
