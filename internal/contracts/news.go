package contracts

import "time"

// Article is one normalized news item
type Article struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

// NewsFeed is the aggregated feed; Error is set when a stale copy is served
type NewsFeed struct {
	UpdatedAt time.Time `json:"updated_at"`
	Articles  []Article `json:"articles"`
	Error     string    `json:"error,omitempty"`
}
