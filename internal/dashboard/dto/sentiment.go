package dto

import (
	"time"

	"golang-stock-sentiment/internal/entity"
)

// Trend classifies the direction of a sentiment series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// MarketLabel classifies the market-wide mean compound score.
type MarketLabel string

const (
	MarketBullish MarketLabel = "bullish"
	MarketBearish MarketLabel = "bearish"
	MarketNeutral MarketLabel = "neutral"
)

// HistoricalSentimentPoint is one day of a sentiment series.
type HistoricalSentimentPoint struct {
	Date          string  `json:"date"`
	CompoundScore float64 `json:"compound_score"`
}

// NewsSourceCount reports how many articles a source contributed.
type NewsSourceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DetailedSentiment is the detailed view of one symbol.
type DetailedSentiment struct {
	CurrentSentiment    entity.SentimentRecord     `json:"current_sentiment"`
	HistoricalSentiment []HistoricalSentimentPoint `json:"historical_sentiment"`
	SentimentTrend      Trend                      `json:"sentiment_trend"`
	NewsSources         []NewsSourceCount          `json:"news_sources"`
}

// MarketOverview aggregates the sentiment of all tracked symbols.
type MarketOverview struct {
	OverallSentiment     MarketLabel                       `json:"overall_sentiment"`
	AverageCompoundScore float64                           `json:"average_compound_score"`
	IndividualSentiments map[string]entity.SentimentRecord `json:"individual_sentiments"`
	Timestamp            time.Time                         `json:"timestamp"`
}

// StocksResponse lists the tracked symbols.
type StocksResponse struct {
	Stocks []string `json:"stocks"`
}

// NewsResponse lists recent articles of a symbol.
type NewsResponse struct {
	Symbol   string               `json:"symbol"`
	Articles []entity.NewsArticle `json:"articles"`
	Count    int                  `json:"count"`
}

// SentimentHistoryResponse lists persisted sentiment records of a symbol.
type SentimentHistoryResponse struct {
	Symbol  string                   `json:"symbol"`
	Days    int                      `json:"days"`
	Records []entity.SentimentRecord `json:"records"`
}

// SourceStatusResponse reports reachability of the upstream news sources.
type SourceStatusResponse struct {
	NewsAPI  bool `json:"news_api"`
	RSSFeeds bool `json:"rss_feeds"`
}
