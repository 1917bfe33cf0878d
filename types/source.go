package types

import (
	"fmt"
	"strings"
	"time"
)

// SourceKind tells the normalizer how to read a payload
type SourceKind string

const (
	KindRSS       SourceKind = "rss"
	KindJSONProxy SourceKind = "json_proxy"
	KindHTML      SourceKind = "html"
)

// ParseSourceKind accepts the names used in env and YAML configuration
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rss", "atom", "feed":
		return KindRSS, nil
	case "json_proxy", "json-proxy", "json", "proxy":
		return KindJSONProxy, nil
	case "html", "page":
		return KindHTML, nil
	}
	return "", fmt.Errorf("unknown source kind %q", s)
}

// Source is one configured upstream endpoint
type Source struct {
	Kind        SourceKind        `json:"kind" yaml:"kind"`
	Name        string            `json:"name" yaml:"name"`
	URL         string            `json:"url" yaml:"url"`
	Headers     map[string]string `json:"-" yaml:"headers"`
	// Readability lets an HTML source fall back to whole-page extraction
	// when no article container matches
	Readability bool              `json:"readability,omitempty" yaml:"readability"`
}

// Label returns the name when set, otherwise the URL
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// RawPayload is an upstream response body as fetched
type RawPayload struct {
	Source      Source    `json:"source"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// CacheEntry is the single cache slot
type CacheEntry struct {
	Payload   RawPayload `json:"payload"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Live reports whether the entry is still fresh at now
func (e *CacheEntry) Live(now time.Time) bool {
	return e != nil && now.Before(e.ExpiresAt)
}
