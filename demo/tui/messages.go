package tui

import "time"

// Messages for the tea program (polling-based)

// FeedLoadedMsg is sent when a feed request completes
type FeedLoadedMsg struct {
	Feed *FeedResponse
	Err  error
}

// RefreshMsg is sent when the server acknowledged a cache refresh
type RefreshMsg struct {
	Err error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
