package rssfeeds

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"ncstfeed/types"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// selectorRule reads one value from a matched node. An empty attr reads the text.
type selectorRule struct {
	selector string
	attr     string
}

// containerSelectors locate article-like elements, most specific first.
// The first selector with any match decides the whole page.
var containerSelectors = []string{
	"article",
	"[role=article]",
	".userContentWrapper",
	".announcement",
	".news-item",
	".post",
	".entry",
}

var (
	titleRules = []selectorRule{
		{selector: "h1"}, {selector: "h2"}, {selector: "h3"},
		{selector: ".title"}, {selector: ".post-title"}, {selector: ".entry-title"},
	}
	linkRules = []selectorRule{
		{selector: "h1 a[href]", attr: "href"},
		{selector: "h2 a[href]", attr: "href"},
		{selector: "h3 a[href]", attr: "href"},
		{selector: "a[href]", attr: "href"},
	}
	imageRules = []selectorRule{
		{selector: "img[src]", attr: "src"},
		{selector: "img[data-src]", attr: "data-src"},
		{selector: "meta[itemprop=image]", attr: "content"},
	}
	dateRules = []selectorRule{
		{selector: "time[datetime]", attr: "datetime"},
		{selector: "abbr[data-utime]", attr: "data-utime"},
		{selector: "time"},
		{selector: ".date"},
		{selector: ".published"},
		{selector: ".timestamp"},
	}
	authorRules = []selectorRule{
		{selector: "[rel=author]"}, {selector: ".author"}, {selector: ".byline"},
	}
)

// minReadableLength is the text length a whole page needs before it counts as an article.
// Login walls and error pages fall below it.
const minReadableLength = 280

// parsePage scrapes article-like elements from an HTML page
func parsePage(payload types.RawPayload, limit int) ([]types.Announcement, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	base, _ := url.Parse(payload.Source.URL)

	for _, sel := range containerSelectors {
		// Nested matches belong to their outermost container
		nodes := doc.Find(sel).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.ParentsFiltered(sel).Length() == 0
		})
		if nodes.Length() == 0 {
			continue
		}

		announcements := make([]types.Announcement, 0, min(nodes.Length(), limit))
		nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
			announcements = append(announcements, pageAnnouncement(node, base, payload))
			return len(announcements) < limit
		})
		return announcements, nil
	}

	if !payload.Source.Readability {
		return nil, nil
	}
	if a, ok := readablePage(payload.Body, base); ok {
		return []types.Announcement{a}, nil
	}
	return nil, nil
}

func pageAnnouncement(node *goquery.Selection, base *url.URL, payload types.RawPayload) types.Announcement {
	var paragraphs []string
	node.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := collapseSpace(p.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})

	a := types.Announcement{
		Title:     CleanTitle(firstMatch(node, titleRules), false),
		Link:      resolveURL(base, firstMatch(node, linkRules)),
		Text:      strings.Join(paragraphs, " "),
		Image:     resolveURL(base, firstMatch(node, imageRules)),
		Published: parseDate(firstMatch(node, dateRules), payload.FetchedAt),
		Author:    collapseSpace(firstMatch(node, authorRules)),
	}
	if html, err := node.Html(); err == nil {
		a.HTML = strings.TrimSpace(html)
	}
	if a.Link != "" {
		a.GUID = types.GenerateID(a.Link)
	}
	return a
}

// firstMatch returns the first non-empty value produced by rules inside node
func firstMatch(node *goquery.Selection, rules []selectorRule) string {
	for _, r := range rules {
		var found string
		node.Find(r.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if r.attr == "" {
				found = collapseSpace(s.Text())
			} else {
				found = strings.TrimSpace(s.AttrOr(r.attr, ""))
			}
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// readablePage is the last strategy: treat the whole page as one announcement.
// Pages with too little readable text are rejected.
func readablePage(body []byte, base *url.URL) (types.Announcement, bool) {
	pageURL := base
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil || strings.TrimSpace(article.Title) == "" || article.Length < minReadableLength {
		return types.Announcement{}, false
	}

	a := types.Announcement{
		Title:  CleanTitle(article.Title, false),
		Text:   collapseSpace(firstNonEmpty(article.Excerpt, article.TextContent)),
		HTML:   article.Content,
		Image:  resolveURL(base, article.Image),
		Author: collapseSpace(article.Byline),
	}
	if base != nil {
		a.Link = base.String()
	}
	a.GUID = types.GenerateID(a.Link + "|" + a.Title)
	return a, true
}
