package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	var serverErr *ServerError
	if m.State == StateError && m.Err != nil && errors.As(m.Err, &serverErr) && serverErr.Suggestion != "" {
		b.WriteString(InfoStyle.Render("💡 " + serverErr.Suggestion))
		b.WriteString("\n\n")
	}

	// Announcement list
	if m.Feed != nil && len(m.Feed.Items) > 0 {
		for i, item := range m.Feed.Items {
			line := fmt.Sprintf("%d. %s", i+1, item.Title)
			if i == m.Cursor {
				b.WriteString(SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if item, ok := m.Selected(); ok {
			b.WriteString(BoxStyle.Render(formatItem(item)))
			b.WriteString("\n\n")
		}

		if m.Feed.FetchedAt != "" {
			b.WriteString(InfoStyle.Render("🕒 Fetched at " + m.Feed.FetchedAt))
			b.WriteString("\n")
		}
	}

	// Help text
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s | polling every %s", TextFooter, m.Interval.Round(time.Second))))

	return b.String()
}

// formatItem renders the selected announcement for display
func formatItem(item FeedItem) string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(item.Title))
	b.WriteString("\n")

	if item.Published != nil {
		b.WriteString(InfoStyle.Render(*item.Published))
		b.WriteString("\n")
	}
	if item.Author != "" {
		b.WriteString(InfoStyle.Render("by " + item.Author))
		b.WriteString("\n")
	}
	if item.Link != "" {
		b.WriteString(item.Link)
		b.WriteString("\n")
	}
	if item.Image != nil {
		b.WriteString(InfoStyle.Render("🖼  " + *item.Image))
		b.WriteString("\n")
	}

	if item.Text != "" {
		preview := []rune(item.Text)
		if len(preview) > 400 {
			preview = append(preview[:400], []rune("...")...)
		}
		b.WriteString("\n")
		b.WriteString(string(preview))
	}

	return b.String()
}
