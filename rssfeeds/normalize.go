package rssfeeds

import (
	"fmt"

	"ncstfeed/types"
)

// DefaultCount is the number of announcements kept when no limit is configured
const DefaultCount = 5

// Normalizer turns raw payloads into canonical announcements
type Normalizer struct {
	limit int
}

// NewNormalizer creates a Normalizer keeping at most limit entries
func NewNormalizer(limit int) *Normalizer {
	if limit <= 0 {
		limit = DefaultCount
	}
	return &Normalizer{limit: limit}
}

// Limit returns the maximum number of announcements produced
func (n *Normalizer) Limit() int { return n.limit }

// Normalize parses payload according to its source kind.
// The result is in document order and never longer than the limit.
func (n *Normalizer) Normalize(payload types.RawPayload) ([]types.Announcement, error) {
	var (
		items []types.Announcement
		err   error
	)

	switch payload.Source.Kind {
	case types.KindRSS:
		items, err = parseFeed(payload, n.limit)
	case types.KindJSONProxy:
		items, err = parseProxy(payload, n.limit)
	case types.KindHTML:
		items, err = parsePage(payload, n.limit)
	default:
		err = fmt.Errorf("unsupported source kind %q", payload.Source.Kind)
	}
	if err != nil {
		return nil, parseError(payload.Source.Label(), err)
	}

	if len(items) > n.limit {
		items = items[:n.limit]
	}
	return items, nil
}

// Probe reports whether payload yields at least one announcement.
// It returns a KindParse or KindEmpty *FetchError otherwise.
func (n *Normalizer) Probe(payload types.RawPayload) error {
	items, err := n.Normalize(payload)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return emptyError(payload.Source.Label())
	}
	return nil
}
