package tui

import (
	"fmt"
	"sort"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("wepub publish demo"))
	b.WriteString("\n\n")

	b.WriteString(m.stateText())
	b.WriteString("\n\n")

	if m.Request != nil {
		info := fmt.Sprintf("Article: %s by %s | content images: %d",
			m.Request.Title, m.Request.Author, len(m.Request.ContentImageURLs))
		b.WriteString(InfoStyle.Render(info))
		b.WriteString("\n\n")
	}

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Activity:"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(InfoStyle.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateComplete && m.Result != nil {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 'p' to publish | 'q' or Ctrl+C to quit"))
	} else if m.State == StateError {
		b.WriteString(InfoStyle.Render("Press 'p' to retry | 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

func (m Model) stateText() string {
	switch m.State {
	case StateIdle:
		return StatusStyle.Render("Ready")
	case StateComposing:
		return StatusStyle.Render("Extracting article...")
	case StatePublishing:
		return StatusStyle.Render("Publishing via relay...")
	case StateComplete:
		return StatusStyle.Render("Published")
	case StateError:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	}
	return string(m.State)
}

func (m Model) formatResult() string {
	var b strings.Builder
	fmt.Fprintf(&b, "draft_media_id: %s\n", m.Result.DraftMediaID)
	fmt.Fprintf(&b, "cover_media_id: %s\n", m.Result.CoverMediaID)
	fmt.Fprintf(&b, "publish_id:     %s", m.Result.PublishID)

	if len(m.Result.ContentMediaIDs) > 0 {
		keys := make([]string, 0, len(m.Result.ContentMediaIDs))
		for k := range m.Result.ContentMediaIDs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\ncontent media:")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s -> %s", k, m.Result.ContentMediaIDs[k])
		}
	}
	return b.String()
}
