package rssfeeds

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ncstfeed/types"
)

// proxyResponse is the rss2json response body
type proxyResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Feed    proxyFeed   `json:"feed"`
	Items   []proxyItem `json:"items"`
}

type proxyFeed struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type proxyItem struct {
	Title       string         `json:"title"`
	PubDate     string         `json:"pubDate"`
	Link        string         `json:"link"`
	GUID        string         `json:"guid"`
	Author      string         `json:"author"`
	Thumbnail   string         `json:"thumbnail"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Enclosure   proxyEnclosure `json:"enclosure"`
}

// proxyEnclosure is an object, or an empty array when the item has none
type proxyEnclosure struct {
	Link string `json:"link"`
	Type string `json:"type"`
}

func (e *proxyEnclosure) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, "[") {
		return nil
	}
	type plain proxyEnclosure
	return json.Unmarshal(data, (*plain)(e))
}

var proxyImageStrategies = []func(proxyItem) string{
	func(it proxyItem) string { return it.Thumbnail },
	func(it proxyItem) string {
		if strings.HasPrefix(it.Enclosure.Type, "image/") {
			return it.Enclosure.Link
		}
		return ""
	},
	func(it proxyItem) string { return FirstImage(it.Description) },
	func(it proxyItem) string { return FirstImage(it.Content) },
}

// parseProxy maps the JSON proxy's items onto announcements
func parseProxy(payload types.RawPayload, limit int) ([]types.Announcement, error) {
	var resp proxyResponse
	if err := json.Unmarshal(payload.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if !strings.EqualFold(resp.Status, "ok") {
		msg := resp.Message
		if msg == "" {
			msg = "proxy returned status " + resp.Status
		}
		return nil, errors.New(msg)
	}

	count := min(len(resp.Items), limit)
	announcements := make([]types.Announcement, 0, count)
	for _, it := range resp.Items[:count] {
		summary := it.Description
		if strings.TrimSpace(summary) == "" {
			summary = it.Content
		}

		a := types.Announcement{
			Title:     CleanTitle(it.Title, true),
			Link:      strings.TrimSpace(it.Link),
			Text:      CleanText(summary),
			HTML:      summary,
			Published: parseDate(it.PubDate, payload.FetchedAt),
			Author:    strings.TrimSpace(it.Author),
			GUID:      strings.TrimSpace(it.GUID),
		}
		for _, strategy := range proxyImageStrategies {
			if src := strings.TrimSpace(strategy(it)); src != "" {
				a.Image = src
				break
			}
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}
