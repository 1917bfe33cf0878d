package api

import (
	"errors"
	"net/http"
	"testing"

	"ncstfeed/rssfeeds"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  string
		wantHint   bool
	}{
		{"forbidden", &rssfeeds.FetchError{Kind: rssfeeds.KindUpstreamHTTP, Status: 403}, http.StatusForbidden, "", true},
		{"not found", &rssfeeds.FetchError{Kind: rssfeeds.KindUpstreamHTTP, Status: 404}, http.StatusNotFound, "", true},
		{"rate limited", &rssfeeds.FetchError{Kind: rssfeeds.KindUpstreamHTTP, Status: 429, RetryAfter: "30"}, http.StatusTooManyRequests, "30", true},
		{"bad gateway", &rssfeeds.FetchError{Kind: rssfeeds.KindUpstreamHTTP, Status: 502}, http.StatusBadGateway, "", true},
		{"teapot", &rssfeeds.FetchError{Kind: rssfeeds.KindUpstreamHTTP, Status: 418}, http.StatusTeapot, "", false},
		{"network", &rssfeeds.FetchError{Kind: rssfeeds.KindNetwork}, http.StatusInternalServerError, "", true},
		{"parse", &rssfeeds.FetchError{Kind: rssfeeds.KindParse, Err: errors.New("bad xml")}, http.StatusInternalServerError, "", true},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := classify(c.err)
			if f.status != c.wantStatus {
				t.Errorf("status = %d; want %d", f.status, c.wantStatus)
			}
			if f.retryAfter != c.wantRetry {
				t.Errorf("retryAfter = %q; want %q", f.retryAfter, c.wantRetry)
			}
			if (f.body.Suggestion != "") != c.wantHint {
				t.Errorf("suggestion = %q", f.body.Suggestion)
			}
			if f.body.Error == "" {
				t.Error("error message must never be empty")
			}
		})
	}
}
