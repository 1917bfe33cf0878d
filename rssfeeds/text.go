package rssfeeds

import (
	"html"
	"net/url"
	"strings"
	"time"

	"ncstfeed/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// CleanText strips tags, decodes entities once and collapses whitespace
func CleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	// bluemonday re-escapes the text it keeps, so a single unescape
	// after sanitizing decodes the source entities exactly once.
	stripped := stripPolicy.Sanitize(s)
	return collapseSpace(html.UnescapeString(stripped))
}

// CleanTitle decodes entities once and falls back to the default title
func CleanTitle(s string, decode bool) string {
	if decode {
		s = html.UnescapeString(s)
	}
	s = collapseSpace(s)
	if s == "" {
		return types.DefaultTitle
	}
	return s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstImage returns the src of the first <img> inside an HTML fragment
func FirstImage(fragment string) string {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var src string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src = imageSource(s)
		return src == ""
	})
	return src
}

// imageSource reads the first populated image attribute
func imageSource(s *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-original"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL makes ref absolute against base; unparseable input is returned as-is
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// parseDate parses a free-form date, falling back to fallback when it cannot.
// An empty raw string means the source has no date and yields nil.
func parseDate(raw string, fallback time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		t = fallback
	}
	return &t
}

// firstNonEmpty returns the first candidate that is not blank
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return strings.TrimSpace(c)
		}
	}
	return ""
}
