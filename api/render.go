package api

import (
	"encoding/xml"
	"time"

	"ncstfeed/types"
)

// JSON output shapes
const (
	ShapeWrapped = "wrapped"
	ShapeArray   = "array"
)

// isoLayout keeps the numeric offset even for UTC ("+00:00")
const isoLayout = "2006-01-02T15:04:05-07:00"

const emptyMessage = "No entries found"

// announcementView is the JSON form of an announcement
type announcementView struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Text      string  `json:"text"`
	Image     *string `json:"image"`
	Published *string `json:"published"`
	Author    string  `json:"author,omitempty"`
	GUID      string  `json:"guid,omitempty"`
}

// feedView is the wrapped JSON response
type feedView struct {
	Channel   types.Channel      `json:"channel"`
	Source    string             `json:"source,omitempty"`
	FetchedAt string             `json:"fetched_at,omitempty"`
	Count     int                `json:"count"`
	Items     []announcementView `json:"items"`
	Message   string             `json:"message,omitempty"`
}

func toView(a types.Announcement) announcementView {
	v := announcementView{
		Title:  a.Title,
		Link:   a.Link,
		Text:   a.Text,
		Author: a.Author,
		GUID:   a.GUID,
	}
	if a.Image != "" {
		img := a.Image
		v.Image = &img
	}
	if a.Published != nil {
		p := a.Published.Format(isoLayout)
		v.Published = &p
	}
	return v
}

func toViews(items []types.Announcement) []announcementView {
	views := make([]announcementView, 0, len(items))
	for _, a := range items {
		views = append(views, toView(a))
	}
	return views
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description cdata    `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Author      string   `xml:"author,omitempty"`
	GUID        *rssGUID `xml:"guid,omitempty"`
}

// cdata wraps raw HTML so it cannot break the surrounding markup
type cdata struct {
	Text string `xml:",cdata"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// renderRSS builds an RSS 2.0 document; an empty list yields a channel with no items
func renderRSS(channel types.Channel, items []types.Announcement, builtAt time.Time) ([]byte, error) {
	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:       channel.Title,
			Link:        channel.Link,
			Description: channel.Description,
		},
	}
	if !builtAt.IsZero() {
		doc.Channel.LastBuildDate = builtAt.Format(time.RFC1123Z)
	}
	if len(items) == 0 {
		doc.Channel.Description = emptyMessage
	}

	for _, a := range items {
		body := a.HTML
		if body == "" {
			body = a.Text
		}
		item := rssItem{
			Title:       a.Title,
			Link:        a.Link,
			Description: cdata{Text: body},
			Author:      a.Author,
		}
		if a.Published != nil {
			item.PubDate = a.Published.Format(time.RFC1123Z)
		}
		if a.GUID != "" {
			item.GUID = &rssGUID{IsPermaLink: "false", Value: a.GUID}
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// xmlError is the /rss error body
type xmlError struct {
	XMLName    xml.Name `xml:"error"`
	Message    string   `xml:"message"`
	Suggestion string   `xml:"suggestion,omitempty"`
	Source     string   `xml:"source,omitempty"`
}
