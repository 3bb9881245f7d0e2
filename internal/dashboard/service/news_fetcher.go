package service

import (
	"context"
	"strings"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

const defaultRSSSource = "RSS Feed"

// NewsFetcher collects candidate articles for a symbol from every configured source.
type NewsFetcher interface {
	// Fetch never fails: a broken source contributes no articles.
	Fetch(ctx context.Context, symbol string) []entity.NewsArticle
}

// NewNewsFetcher creates a new news fetcher.
func NewNewsFetcher(cfg *config.Config, symbols *config.SymbolTable, newsAPIRepo repository.NewsAPIRepository, rssRepo repository.RSSRepository, log *logger.Logger) NewsFetcher {
	return &newsFetcher{
		cfg:         cfg,
		symbols:     symbols,
		newsAPIRepo: newsAPIRepo,
		rssRepo:     rssRepo,
		logger:      log,
	}
}

type newsFetcher struct {
	cfg         *config.Config
	symbols     *config.SymbolTable
	newsAPIRepo repository.NewsAPIRepository
	rssRepo     repository.RSSRepository
	logger      *logger.Logger
}

// Fetch returns the keyword-search articles followed by the matching RSS entries.
// Sources are queried sequentially and not deduplicated against each other.
func (f *newsFetcher) Fetch(ctx context.Context, symbol string) []entity.NewsArticle {
	keywords := f.symbols.Keywords(symbol)

	articles := f.fetchNewsAPI(ctx, symbol, keywords)
	articles = append(articles, f.fetchRSS(ctx, symbol, keywords)...)

	f.logger.DebugContext(ctx, "Fetched news articles",
		logger.StringField("symbol", symbol),
		logger.IntField("count", len(articles)))

	return articles
}

func (f *newsFetcher) fetchNewsAPI(ctx context.Context, symbol string, keywords []string) []entity.NewsArticle {
	if !f.newsAPIRepo.Enabled() {
		return nil
	}

	items, err := f.newsAPIRepo.Search(ctx, dto.SearchNewsParam{
		Keywords: keywords,
		PageSize: f.cfg.NewsAPI.PageSize,
	})
	if err != nil {
		f.logger.WarnContext(ctx, "News API search failed, skipping source",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return nil
	}

	limit := f.cfg.NewsAPI.MaxArticles
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for _, item := range items {
		article := entity.NewsArticle{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: item.PublishedAt,
			Symbol:      symbol,
			Keywords:    keywords,
		}
		article.ComputeHash()
		articles = append(articles, article)
	}
	return articles
}

func (f *newsFetcher) fetchRSS(ctx context.Context, symbol string, keywords []string) []entity.NewsArticle {
	feeds := f.cfg.RSS.Feeds
	if f.cfg.RSS.MaxFeeds > 0 && len(feeds) > f.cfg.RSS.MaxFeeds {
		feeds = feeds[:f.cfg.RSS.MaxFeeds]
	}

	var articles []entity.NewsArticle
	for _, feedURL := range feeds {
		if !utils.ShouldContinue(ctx, f.logger) {
			break
		}

		feed, err := f.rssRepo.Fetch(ctx, feedURL)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to read RSS feed, skipping",
				logger.StringField("url", feedURL),
				logger.StringField("symbol", symbol),
				logger.ErrorField(err))
			continue
		}

		source := feed.Title
		if source == "" {
			source = defaultRSSSource
		}

		items := feed.Items
		if f.cfg.RSS.MaxEntriesPerFeed > 0 && len(items) > f.cfg.RSS.MaxEntriesPerFeed {
			items = items[:f.cfg.RSS.MaxEntriesPerFeed]
		}

		for _, item := range items {
			if !utils.ContainsAnyFold(item.Title+" "+item.Description, keywords) {
				continue
			}
			article := entity.NewsArticle{
				Title:       item.Title,
				Description: item.Description,
				URL:         item.Link,
				Source:      source,
				PublishedAt: item.PublishedAt,
				Symbol:      symbol,
				Keywords:    keywords,
			}
			article.ComputeHash()
			articles = append(articles, article)
		}
	}
	return articles
}
