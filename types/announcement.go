package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTitle is used when an upstream entry carries no title
const DefaultTitle = "No Title"

// Announcement is the canonical record served to clients
type Announcement struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Text      string     `json:"text"`
	HTML      string     `json:"-"`
	Image     string     `json:"image,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	Author    string     `json:"author,omitempty"`
	GUID      string     `json:"guid,omitempty"`
}

// Channel describes the feed the announcements are republished under
type Channel struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link" yaml:"link"`
	Description string `json:"description" yaml:"description"`
}

// GenerateID creates a short, stable ID from a link or title
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
