package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ncstfeed/types"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("nil items = %q; want []", buf.String())
	}

	buf.Reset()
	items := []types.Announcement{{Title: "A & B", Link: "https://x/1", Text: "Hello", HTML: "<p>Hello</p>"}}
	if err := writeJSON(&buf, items); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got[0]["title"] != "A & B" {
		t.Errorf("title = %v", got[0]["title"])
	}
	if _, ok := got[0]["html"]; ok {
		t.Error("html should not be serialized")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, nil, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No entries found") {
		t.Errorf("empty summary = %q", buf.String())
	}

	buf.Reset()
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	payload := &types.RawPayload{Source: types.Source{Kind: types.KindRSS, Name: "rsshub"}}
	items := []types.Announcement{{Title: "Enrollment", Link: "https://x/1", Text: strings.Repeat("a", 300), Published: &published}}
	if err := writeSummary(&buf, payload, items); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Enrollment", "rsshub", "https://x/1", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 10); got != "héllo" {
		t.Errorf("got %q", got)
	}
	if got := truncate("héllo", 2); got != "hé..." {
		t.Errorf("got %q", got)
	}
}
