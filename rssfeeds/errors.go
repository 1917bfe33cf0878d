package rssfeeds

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a source could not be used
type ErrorKind int

const (
	// KindNetwork covers DNS, connect and timeout failures
	KindNetwork ErrorKind = iota
	// KindUpstreamHTTP is a 4xx/5xx answer from the source
	KindUpstreamHTTP
	// KindParse means the body was not a readable feed or page
	KindParse
	// KindEmpty means the body parsed but held no usable entries
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUpstreamHTTP:
		return "upstream_http"
	case KindParse:
		return "parse"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// FetchError is returned for every per-source failure
type FetchError struct {
	Kind   ErrorKind
	Source string
	// Status is the upstream HTTP status, 0 for network failures
	Status int
	// RetryAfter is the raw upstream Retry-After value on 429/503
	RetryAfter string
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s error (HTTP %d): %s", e.Source, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Source, e.Kind, msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError unwraps err into a *FetchError when possible
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsEmpty reports whether err is an empty-result failure
func IsEmpty(err error) bool {
	fe, ok := AsFetchError(err)
	return ok && fe.Kind == KindEmpty
}

func parseError(source string, err error) *FetchError {
	return &FetchError{Kind: KindParse, Source: source, Err: err}
}

func emptyError(source string) *FetchError {
	return &FetchError{Kind: KindEmpty, Source: source, Message: "no entries found"}
}
