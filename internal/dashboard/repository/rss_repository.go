package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/mmcdole/gofeed"
)

// RSSRepository reads syndication feeds.
type RSSRepository interface {
	Fetch(ctx context.Context, feedURL string) (*dto.RSSFeed, error)
}

type rssRepository struct {
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewRSSRepository creates a new instance of RSSRepository.
func NewRSSRepository(cfg *config.Config, log *logger.Logger) RSSRepository {
	timeout := cfg.RSS.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	if cfg.RSS.UserAgent != "" {
		parser.UserAgent = cfg.RSS.UserAgent
	}
	return &rssRepository{
		log:    log,
		parser: parser,
	}
}

// Fetch downloads and parses the feed at feedURL.
func (r *rssRepository) Fetch(ctx context.Context, feedURL string) (*dto.RSSFeed, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse rss feed %s: %w", feedURL, err)
	}

	result := &dto.RSSFeed{
		Title: utils.CleanToValidUTF8(strings.TrimSpace(feed.Title)),
		Items: make([]dto.RSSItem, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		result.Items = append(result.Items, dto.RSSItem{
			Title:       utils.CleanToValidUTF8(strings.TrimSpace(item.Title)),
			Description: utils.CleanToValidUTF8(itemDescription(item)),
			Link:        item.Link,
			PublishedAt: itemPublished(item),
		})
	}

	r.log.DebugContext(ctx, "RSS feed parsed",
		logger.StringField("url", feedURL),
		logger.IntField("items", len(result.Items)))

	return result, nil
}

func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	if item.Content != "" {
		return item.Content
	}
	if item.ITunesExt != nil {
		return item.ITunesExt.Summary
	}
	return ""
}

func itemPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return utils.ToPointer(item.PublishedParsed.UTC())
	}
	if item.UpdatedParsed != nil {
		return utils.ToPointer(item.UpdatedParsed.UTC())
	}
	return nil
}
