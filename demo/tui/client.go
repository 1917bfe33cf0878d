package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FeedClient is a thin HTTP client for a running ncstfeed server
type FeedClient struct {
	baseURL string
	client  *http.Client
}

// NewFeedClient creates a new feed client
func NewFeedClient(baseURL string) *FeedClient {
	return &FeedClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetFeed fetches the current announcements. Both JSON shapes are accepted.
func (c *FeedClient) GetFeed() (*FeedResponse, error) {
	resp, err := c.client.Get(c.baseURL + "/api/announcements")
	if err != nil {
		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error      string `json:"error"`
			Suggestion string `json:"suggestion"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, &ServerError{Status: resp.StatusCode, Message: apiErr.Error, Suggestion: apiErr.Suggestion}
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var feed FeedResponse
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		if err := json.Unmarshal(body, &feed.Items); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		feed.Count = len(feed.Items)
		feed.Empty = resp.Header.Get("X-Feed-Empty") == "true"
		feed.Source = resp.Header.Get("X-Feed-Source")
		return &feed, nil
	}

	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	feed.Empty = feed.Message != "" || resp.Header.Get("X-Feed-Empty") == "true"
	return &feed, nil
}

// Refresh asks the server to drop its cached payload
func (c *FeedClient) Refresh() error {
	resp, err := c.client.Post(c.baseURL+"/api/refresh", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("failed to refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// ServerError is a non-200 answer from the server
type ServerError struct {
	Status     int
	Message    string
	Suggestion string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}
