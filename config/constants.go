package config

import "time"

// Upstream defaults
const (
	// DefaultFeedURL is the RSSHub route for the NCST Facebook page
	DefaultFeedURL = "https://rsshub.app/facebook/page/NCST.OfficialPage"

	// DefaultProxyEndpoint converts an RSS URL to JSON
	DefaultProxyEndpoint = "https://api.rss2json.com/v1/api.json"

	// DefaultPageURL is scraped when both feeds fail
	DefaultPageURL = "https://www.facebook.com/NCST.OfficialPage"
)

// Cache and fetch defaults
const (
	DefaultCacheTTL       = 600 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	MinRequestTimeout     = 10 * time.Second
	MaxRequestTimeout     = 20 * time.Second
	DefaultCacheKey       = "ncstfeed:payload"
)

// Output defaults
const (
	DefaultResultLimit = 5
	MaxResultLimit     = 50
	DefaultPort        = "8080"

	JSONShapeWrapped = "wrapped"
	JSONShapeArray   = "array"
)

// Channel defaults used in RSS and wrapped JSON output
const (
	DefaultChannelTitle       = "NCST Official Page"
	DefaultChannelLink        = "https://www.facebook.com/NCST.OfficialPage"
	DefaultChannelDescription = "Latest posts from NCST Facebook Page"
)
