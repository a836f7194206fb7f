package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"wepub/types"
)

// State represents the demo state machine
type State string

const (
	StateIdle       State = "idle"
	StateComposing  State = "composing"
	StatePublishing State = "publishing"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// Model represents the TUI state (thin client of the relay)
type Model struct {
	RelayClient *RelayClient
	ArticleURL  string

	State   State
	Request *types.PublishRequest
	Result  *types.PublishResponse
	Logs    []string
	Err     error
}

// NewModel creates a new TUI model
func NewModel(relayURL, articleURL string) Model {
	return Model{
		RelayClient: NewRelayClient(relayURL),
		ArticleURL:  articleURL,
		State:       StateIdle,
		Logs:        make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends a log line, keeping the last few entries
func (m Model) AddLog(msg string) Model {
	m.Logs = append(m.Logs, msg)
	if len(m.Logs) > 8 {
		m.Logs = m.Logs[len(m.Logs)-8:]
	}
	return m
}
