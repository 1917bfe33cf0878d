package tui

import (
	"fmt"
	"time"

	"ncstfeed/types"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateLoading    State = "loading"
	StateRefreshing State = "refreshing"
	StateReady      State = "ready"
	StateEmpty      State = "empty"
	StateError      State = "error"
)

// FeedItem is one announcement as served by /api/announcements
type FeedItem struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Text      string  `json:"text"`
	Image     *string `json:"image"`
	Published *string `json:"published"`
	Author    string  `json:"author,omitempty"`
	GUID      string  `json:"guid,omitempty"`
}

// FeedResponse is the wrapped JSON response
type FeedResponse struct {
	Channel   types.Channel `json:"channel"`
	Source    string        `json:"source"`
	FetchedAt string        `json:"fetched_at"`
	Count     int           `json:"count"`
	Items     []FeedItem    `json:"items"`
	Message   string        `json:"message"`

	// Empty is set from the message or the X-Feed-Empty header
	Empty bool `json:"-"`
}

// Model represents the TUI client state (thin client)
type Model struct {
	Client   *FeedClient
	Interval time.Duration

	State       State
	Feed        *FeedResponse
	Cursor      int
	Err         error
	LastUpdated time.Time

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(serverURL string, interval time.Duration) Model {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return Model{
		Client:   NewFeedClient(serverURL),
		Interval: interval,
		State:    StateLoading,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		loadFeed(m.Client),
		tickCmd(m.Interval),
	)
}

// Selected returns the announcement under the cursor
func (m Model) Selected() (FeedItem, bool) {
	if m.Feed == nil || m.Cursor < 0 || m.Cursor >= len(m.Feed.Items) {
		return FeedItem{}, false
	}
	return m.Feed.Items[m.Cursor], true
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateLoading:
		return StatusStyle.Render("⏳ Loading announcements...")
	case StateRefreshing:
		return StatusStyle.Render("🔄 Refreshing from upstream...")
	case StateReady:
		return HighlightStyle.Render(fmt.Sprintf("✅ %d announcement(s) from %s", len(m.Feed.Items), m.Feed.Source))
	case StateEmpty:
		return InfoStyle.Render("📭 " + TextEmpty)
	case StateError:
		if !m.Connected {
			return ErrorStyle.Render("❌ Not connected to server")
		}
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}
