package api

import (
	"context"
	"net/http"
	"time"

	"ncstfeed/rssfeeds"
	"ncstfeed/types"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	rssContentType = "application/rss+xml; charset=utf-8"

	headerEmpty       = "X-Feed-Empty"
	headerPlaceholder = "X-Feed-Placeholder"
	headerSource      = "X-Feed-Source"
)

// RegisterAnnouncementRoutes registers the JSON and RSS announcement endpoints.
func (s *Server) RegisterAnnouncementRoutes(r *gin.Engine) {
	r.GET("/api/announcements", s.handleAnnouncements)
	r.GET("/rss", s.handleRSS)
}

// feedResult is what a request renders on success
type feedResult struct {
	items       []types.Announcement
	payload     *types.RawPayload
	empty       bool
	placeholder bool
}

// load runs cache → normalizer. Empty upstreams are a result, not an error.
func (s *Server) load(ctx context.Context) (feedResult, error) {
	payload, err := s.cache.GetOrFetch(ctx, s.opts.Sources)
	if err == nil {
		var items []types.Announcement
		items, err = s.normalizer.Normalize(*payload)
		if err == nil {
			return feedResult{items: items, payload: payload, empty: len(items) == 0}, nil
		}
	}

	if rssfeeds.IsEmpty(err) {
		return feedResult{empty: true}, nil
	}
	if s.opts.PlaceholderOnFailure {
		logrus.WithError(err).Warn("all sources failed, serving placeholder")
		return feedResult{items: []types.Announcement{s.placeholder()}, placeholder: true}, nil
	}
	return feedResult{}, err
}

func (s *Server) placeholder() types.Announcement {
	return types.Announcement{
		Title: "Announcements are temporarily unavailable",
		Link:  s.opts.Channel.Link,
		Text:  "The latest posts could not be loaded right now. Please check back shortly.",
	}
}

func setFeedHeaders(c *gin.Context, res feedResult) {
	if res.empty {
		c.Header(headerEmpty, "true")
	}
	if res.placeholder {
		c.Header(headerPlaceholder, "true")
	}
	if res.payload != nil {
		c.Header(headerSource, res.payload.Source.Label())
	}
}

// handleAnnouncements serves the announcements as JSON
// GET /api/announcements
//
// The wrapped shape marks an empty result with "message". The array shape has
// no room for one, so an empty result is a bare [] and X-Feed-Empty: true is the marker.
func (s *Server) handleAnnouncements(c *gin.Context) {
	res, err := s.load(c.Request.Context())
	if err != nil {
		f := classify(err)
		logrus.WithError(err).WithField("status", f.status).Error("announcements unavailable")
		if f.retryAfter != "" {
			c.Header("Retry-After", f.retryAfter)
		}
		c.JSON(f.status, f.body)
		return
	}

	setFeedHeaders(c, res)
	if s.opts.JSONShape == ShapeArray {
		c.JSON(http.StatusOK, toViews(res.items))
		return
	}

	view := feedView{
		Channel: s.opts.Channel,
		Count:   len(res.items),
		Items:   toViews(res.items),
	}
	if res.payload != nil {
		view.Source = res.payload.Source.Label()
		view.FetchedAt = res.payload.FetchedAt.Format(isoLayout)
	}
	if res.empty {
		view.Message = emptyMessage
	}
	c.JSON(http.StatusOK, view)
}

// handleRSS republishes the announcements as RSS 2.0
// GET /rss
func (s *Server) handleRSS(c *gin.Context) {
	res, err := s.load(c.Request.Context())
	if err != nil {
		f := classify(err)
		logrus.WithError(err).WithField("status", f.status).Error("rss unavailable")
		if f.retryAfter != "" {
			c.Header("Retry-After", f.retryAfter)
		}
		c.XML(f.status, xmlError{Message: f.body.Error, Suggestion: f.body.Suggestion, Source: f.body.Source})
		return
	}

	setFeedHeaders(c, res)
	var builtAt time.Time
	if res.payload != nil {
		builtAt = res.payload.FetchedAt
	}
	body, err := renderRSS(s.opts.Channel, res.items, builtAt)
	if err != nil {
		logrus.WithError(err).Error("rss encoding failed")
		c.XML(http.StatusInternalServerError, xmlError{Message: "Error building feed: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, rssContentType, body)
}
