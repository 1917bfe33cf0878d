package tui

// UI Text Constants
const (
	TextTitle = "📢 NCST Announcements"
	TextEmpty = "No entries found"

	// Footer
	TextFooter = "↑/↓ select | 'r' refresh upstream | 'q' quit"
)
