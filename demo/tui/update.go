package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case RefreshMsg:
		return m.handleRefresh(msg)
	case TickMsg:
		return m, tea.Batch(loadFeed(m.Client), tickCmd(m.Interval))
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Feed != nil && m.Cursor < len(m.Feed.Items)-1 {
			m.Cursor++
		}
	case "r", "R":
		if m.State != StateRefreshing {
			m.State = StateRefreshing
			return m, triggerRefresh(m.Client)
		}
	}
	return m, nil
}

// handleFeedLoaded stores the latest feed or error
func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		var serverErr *ServerError
		m.Connected = errors.As(msg.Err, &serverErr)
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	m.Connected = true
	m.Err = nil
	m.Feed = msg.Feed
	if m.Cursor >= len(msg.Feed.Items) {
		m.Cursor = 0
	}
	if len(msg.Feed.Items) == 0 {
		m.State = StateEmpty
	} else {
		m.State = StateReady
	}
	return m, nil
}

// handleRefresh reloads the feed once the server dropped its cache
func (m Model) handleRefresh(msg RefreshMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	return m, loadFeed(m.Client)
}
