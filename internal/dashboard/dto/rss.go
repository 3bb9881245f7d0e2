package dto

import "time"

// RSSFeed is a parsed syndication feed.
type RSSFeed struct {
	Title string
	Items []RSSItem
}

// RSSItem is one feed entry. Description already falls back to content or summary.
type RSSItem struct {
	Title       string
	Description string
	Link        string
	PublishedAt *time.Time
}
