package rssfeeds

import (
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hi</p>", "Hi"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"&lt;not a tag&gt;", "<not a tag>"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"<script>alert(1)</script>Safe", "Safe"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.input); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	if got := CleanTitle("  ", false); got != "No Title" {
		t.Errorf("blank title = %q", got)
	}
	if got := CleanTitle("A &amp; B", true); got != "A & B" {
		t.Errorf("decoded title = %q", got)
	}
	if got := CleanTitle("A &amp; B", false); got != "A &amp; B" {
		t.Errorf("undecoded title = %q", got)
	}
}

func TestFirstImage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`<p>no image</p>`, ""},
		{`<img src="a.jpg"><img src="b.jpg">`, "a.jpg"},
		{`<img alt="lazy" data-src="lazy.jpg">`, "lazy.jpg"},
		{`<IMG SRC="upper.jpg">`, "upper.jpg"},
	}
	for _, tt := range tests {
		if got := FirstImage(tt.input); got != tt.want {
			t.Errorf("FirstImage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := parseDate("", fallback); got != nil {
		t.Errorf("empty date should be nil, got %v", got)
	}
	if got := parseDate("1704067200", fallback); got == nil || !got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unix seconds = %v", got)
	}
	if got := parseDate("January 2, 2024", fallback); got == nil || got.Day() != 2 {
		t.Errorf("long form date = %v", got)
	}
	if got := parseDate("yesterday-ish", fallback); got == nil || !got.Equal(fallback) {
		t.Errorf("garbage date should fall back, got %v", got)
	}
}
