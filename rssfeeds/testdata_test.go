package rssfeeds

import (
	"fmt"
	"strings"
	"time"

	"ncstfeed/types"
)

var fetchedAt = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// rssDoc builds an RSS 2.0 document from raw <item> bodies
func rssDoc(items ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel><title>Test</title><link>http://example.com</link><description>d</description>`)
	for _, it := range items {
		b.WriteString("<item>" + it + "</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func numberedItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("<title>Post %d</title><link>http://example.com/%d</link><description>Body %d</description>", i+1, i+1, i+1)
	}
	return items
}

func payloadOf(kind types.SourceKind, url, body string) types.RawPayload {
	return types.RawPayload{
		Source:    types.Source{Kind: kind, Name: string(kind), URL: url},
		Body:      []byte(body),
		FetchedAt: fetchedAt,
	}
}
