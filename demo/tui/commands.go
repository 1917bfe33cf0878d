package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// loadFeed creates a command to fetch the announcements
func loadFeed(client *FeedClient) tea.Cmd {
	return func() tea.Msg {
		feed, err := client.GetFeed()
		return FeedLoadedMsg{Feed: feed, Err: err}
	}
}

// triggerRefresh creates a command to clear the server's cache
func triggerRefresh(client *FeedClient) tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{Err: client.Refresh()}
	}
}

// tickCmd creates a command that ticks once per polling interval
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
