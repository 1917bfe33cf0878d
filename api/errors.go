package api

import (
	"net/http"

	"ncstfeed/rssfeeds"
)

// errorBody is the JSON error response
type errorBody struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
	Source     string `json:"source,omitempty"`
}

// failure is a fully resolved error response
type failure struct {
	status     int
	body       errorBody
	retryAfter string
}

// classify maps a pipeline error onto a status, body and Retry-After value.
// Upstream 4xx/5xx statuses are propagated, everything else is a 500.
func classify(err error) failure {
	fe, ok := rssfeeds.AsFetchError(err)
	if !ok {
		return failure{
			status: http.StatusInternalServerError,
			body:   errorBody{Error: "Error fetching feed: " + err.Error()},
		}
	}

	f := failure{
		status:     http.StatusInternalServerError,
		body:       errorBody{Error: "Error fetching feed: " + fe.Error(), Source: fe.Source},
		retryAfter: fe.RetryAfter,
	}
	if fe.Kind == rssfeeds.KindUpstreamHTTP && fe.Status >= 400 && fe.Status <= 599 {
		f.status = fe.Status
	}
	f.body.Suggestion = suggestionFor(fe)
	return f
}

func suggestionFor(fe *rssfeeds.FetchError) string {
	switch fe.Kind {
	case rssfeeds.KindNetwork:
		return "The upstream could not be reached; check network connectivity and the configured source URLs."
	case rssfeeds.KindParse:
		return "The upstream returned content that is not a readable feed or page; check the source kind and URL."
	case rssfeeds.KindEmpty:
		return "The upstream has no entries yet."
	}

	switch {
	case fe.Status == http.StatusUnauthorized || fe.Status == http.StatusForbidden:
		return "The feed may require authentication, or the upstream is blocking automated requests."
	case fe.Status == http.StatusNotFound:
		return "Check that the configured feed URL still exists."
	case fe.Status == http.StatusTooManyRequests:
		return "The upstream is rate limiting requests; retry after the indicated delay."
	case fe.Status >= 500:
		return "The upstream service is failing; try again later."
	}
	return ""
}
