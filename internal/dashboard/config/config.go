package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"

	"github.com/spf13/viper"
)

// Cache holds response cache configuration.
type Cache struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// NewsAPI holds the configuration for the keyword-search news API.
type NewsAPI struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Language            string        `mapstructure:"language"`
	SortBy              string        `mapstructure:"sort_by"`
	PageSize            int           `mapstructure:"page_size"`
	MaxArticles         int           `mapstructure:"max_articles"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// RSS holds the configuration for the syndication feeds.
type RSS struct {
	Feeds             []string      `mapstructure:"feeds"`
	MaxFeeds          int           `mapstructure:"max_feeds"`
	MaxEntriesPerFeed int           `mapstructure:"max_entries_per_feed"`
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// Sentiment holds the tuning values of the sentiment pipeline.
// LexiconWeight, PolarityWeight and TrendSlopeThreshold are uncalibrated; the defaults
// keep the historical behaviour.
type Sentiment struct {
	SymbolsFile         string   `mapstructure:"symbols_file"`
	DefaultStocks       []string `mapstructure:"default_stocks"`
	LexiconWeight       float64  `mapstructure:"lexicon_weight"`
	PolarityWeight      float64  `mapstructure:"polarity_weight"`
	TrendSlopeThreshold float64  `mapstructure:"trend_slope_threshold"`
	HistoryDays         int      `mapstructure:"history_days"`
	HistoryNoise        float64  `mapstructure:"history_noise"`
	NewsLimit           int      `mapstructure:"news_limit"`
}

// JobSchedule holds the cron spec and timeout of one background job.
type JobSchedule struct {
	Enabled bool          `mapstructure:"enabled"`
	Cron    string        `mapstructure:"cron"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Scheduler holds the background job configuration.
type Scheduler struct {
	SentimentRefresh   JobSchedule `mapstructure:"sentiment_refresh"`
	SentimentBroadcast JobSchedule `mapstructure:"sentiment_broadcast"`
	NewsCollect        JobSchedule `mapstructure:"news_collect"`
	MarketDigest       JobSchedule `mapstructure:"market_digest"`
	DataCleanup        JobSchedule `mapstructure:"data_cleanup"`
	RetentionDays      int         `mapstructure:"retention_days"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Enabled reports whether Telegram notifications are configured.
func (t Telegram) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// WebSocket holds WebSocket configuration.
type WebSocket struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SendBuffer     int      `mapstructure:"send_buffer"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Cache     Cache           `mapstructure:"cache"`
	NewsAPI   NewsAPI         `mapstructure:"news_api"`
	RSS       RSS             `mapstructure:"rss"`
	Sentiment Sentiment       `mapstructure:"sentiment"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Telegram  Telegram        `mapstructure:"telegram"`
	WebSocket WebSocket       `mapstructure:"websocket"`
}

// DefaultFeeds is the list of financial RSS feeds; only the first MaxFeeds are read.
var DefaultFeeds = []string{
	"https://feeds.finance.yahoo.com/rss/2.0/headline",
	"https://www.marketwatch.com/rss/topstories",
	"https://feeds.bloomberg.com/markets/news.rss",
	"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	"https://feeds.reuters.com/news/wealth",
}

// DefaultStocks is the list of tracked symbols when none is configured.
var DefaultStocks = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "META", "NVDA", "NFLX"}

// SetDefaults registers default values and the legacy environment variable names.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stock-sentiment-dashboard")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("api.port", 8080)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.stream_max_len", 1000)

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("news_api.base_url", "https://newsapi.org/v2")
	v.SetDefault("news_api.api_key", "")
	v.SetDefault("news_api.language", "en")
	v.SetDefault("news_api.sort_by", "publishedAt")
	v.SetDefault("news_api.page_size", 10)
	v.SetDefault("news_api.max_articles", 5)
	v.SetDefault("news_api.max_request_per_minute", 60)
	v.SetDefault("news_api.timeout", 10*time.Second)

	v.SetDefault("rss.feeds", DefaultFeeds)
	v.SetDefault("rss.max_feeds", 2)
	v.SetDefault("rss.max_entries_per_feed", 5)
	v.SetDefault("rss.timeout", 10*time.Second)
	v.SetDefault("rss.user_agent", "Mozilla/5.0 (compatible; stock-sentiment-dashboard/1.0)")

	v.SetDefault("sentiment.symbols_file", "configs/symbols.yaml")
	v.SetDefault("sentiment.default_stocks", DefaultStocks)
	v.SetDefault("sentiment.lexicon_weight", 0.7)
	v.SetDefault("sentiment.polarity_weight", 0.3)
	v.SetDefault("sentiment.trend_slope_threshold", 0.02)
	v.SetDefault("sentiment.history_days", 7)
	v.SetDefault("sentiment.history_noise", 0.1)
	v.SetDefault("sentiment.news_limit", 10)

	setJobDefaults(v, "scheduler.sentiment_refresh", "@every 3m", 2*time.Minute)
	setJobDefaults(v, "scheduler.sentiment_broadcast", "@every 10s", 30*time.Second)
	setJobDefaults(v, "scheduler.news_collect", "@every 5m", 2*time.Minute)
	setJobDefaults(v, "scheduler.market_digest", "0 8 * * 1-5", 2*time.Minute)
	setJobDefaults(v, "scheduler.data_cleanup", "@daily", 5*time.Minute)
	v.SetDefault("scheduler.retention_days", 90)

	v.SetDefault("websocket.send_buffer", 256)

	_ = v.BindEnv("news_api.api_key", "NEWS_API_API_KEY", "NEWS_API_KEY")
	_ = v.BindEnv("sentiment.default_stocks", "SENTIMENT_DEFAULT_STOCKS", "DEFAULT_STOCKS")
	_ = v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
}

func setJobDefaults(v *viper.Viper, key, cron string, timeout time.Duration) {
	v.SetDefault(key+".enabled", true)
	v.SetDefault(key+".cron", cron)
	v.SetDefault(key+".timeout", timeout)
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, SetDefaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
