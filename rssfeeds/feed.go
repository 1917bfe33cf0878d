package rssfeeds

import (
	"bytes"
	"fmt"
	"strings"

	"ncstfeed/types"

	"github.com/mmcdole/gofeed"
)

// feedImageStrategies are tried in order; the first non-empty URL wins
var feedImageStrategies = []func(*gofeed.Item) string{
	func(item *gofeed.Item) string { return FirstImage(item.Description) },
	func(item *gofeed.Item) string { return FirstImage(item.Content) },
	func(item *gofeed.Item) string {
		if item.Image != nil {
			return item.Image.URL
		}
		return ""
	},
	func(item *gofeed.Item) string {
		for _, enc := range item.Enclosures {
			if enc != nil && strings.HasPrefix(enc.Type, "image/") {
				return enc.URL
			}
		}
		return ""
	},
	func(item *gofeed.Item) string { return mediaExtensionURL(item, "thumbnail") },
	func(item *gofeed.Item) string { return mediaExtensionURL(item, "content") },
}

// parseFeed reads an RSS or Atom document with gofeed
func parseFeed(payload types.RawPayload, limit int) ([]types.Announcement, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(payload.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	count := min(len(feed.Items), limit)
	announcements := make([]types.Announcement, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item == nil {
			continue
		}

		// Get description/summary
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		announcement := types.Announcement{
			Title:  CleanTitle(item.Title, false),
			Link:   strings.TrimSpace(item.Link),
			Text:   CleanText(summary),
			HTML:   summary,
			Author: feedAuthor(item),
			GUID:   strings.TrimSpace(item.GUID),
		}
		if announcement.Link == "" && len(item.Links) > 0 {
			announcement.Link = strings.TrimSpace(item.Links[0])
		}

		for _, strategy := range feedImageStrategies {
			if src := strings.TrimSpace(strategy(item)); src != "" {
				announcement.Image = src
				break
			}
		}

		// Parse published date
		switch {
		case item.PublishedParsed != nil:
			t := *item.PublishedParsed
			announcement.Published = &t
		case item.Published != "":
			announcement.Published = parseDate(item.Published, payload.FetchedAt)
		case item.UpdatedParsed != nil:
			t := *item.UpdatedParsed
			announcement.Published = &t
		default:
			announcement.Published = parseDate(item.Updated, payload.FetchedAt)
		}

		announcements = append(announcements, announcement)
	}

	return announcements, nil
}

func feedAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return strings.TrimSpace(a.Name)
		}
	}
	return ""
}

// mediaExtensionURL reads media:<name url="..."> from the item extensions
func mediaExtensionURL(item *gofeed.Item, name string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[name] {
		if u := ext.Attrs["url"]; u != "" {
			return u
		}
	}
	// media:group wraps thumbnails in some feeds
	for _, group := range media["group"] {
		for _, ext := range group.Children[name] {
			if u := ext.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return ""
}
