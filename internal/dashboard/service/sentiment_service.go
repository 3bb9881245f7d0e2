package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/nlp"
	"golang-stock-sentiment/pkg/utils"
)

var (
	// ErrNoArticles means no source returned an article for the symbol.
	ErrNoArticles = errors.New("no news articles found")
	// ErrNoScorableArticles means articles were found but none had text to score.
	ErrNoScorableArticles = errors.New("no scorable news articles")
)

// Provenance tells whether a record was computed from news or simulated.
type Provenance string

const (
	ProvenanceAggregated Provenance = common.SourceAggregated
	ProvenanceSimulated  Provenance = common.SourceSimulated
)

// SentimentResult is the outcome of one aggregation. Reason is set when the
// record is simulated and explains why real news could not be used.
type SentimentResult struct {
	Record     entity.SentimentRecord
	Provenance Provenance
	Reason     error
	Articles   []entity.NewsArticle
}

// Simulated reports whether the record was drawn from the fallback distribution.
func (r SentimentResult) Simulated() bool {
	return r.Provenance == ProvenanceSimulated
}

// TextNormalizer cleans raw article text before scoring.
type TextNormalizer interface {
	Normalize(text string) string
}

// TextScorer scores normalized text.
type TextScorer interface {
	Score(text string) nlp.ScoreComponents
}

// SentimentService defines the sentiment pipeline operations.
type SentimentService interface {
	Symbols() []string
	GetSentimentForStock(ctx context.Context, symbol string) SentimentResult
	GetDetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment
	DescribeSentiment(result SentimentResult) dto.DetailedSentiment
	CheckSources(ctx context.Context) dto.SourceStatusResponse
}

// NewSentimentService creates a new sentiment service.
func NewSentimentService(
	cfg *config.Config,
	symbols *config.SymbolTable,
	fetcher NewsFetcher,
	normalizer TextNormalizer,
	scorer TextScorer,
	sampler Sampler,
	newsAPIRepo repository.NewsAPIRepository,
	rssRepo repository.RSSRepository,
	log *logger.Logger,
) SentimentService {
	return &sentimentService{
		cfg:         cfg,
		symbols:     symbols,
		fetcher:     fetcher,
		normalizer:  normalizer,
		scorer:      scorer,
		sampler:     sampler,
		newsAPIRepo: newsAPIRepo,
		rssRepo:     rssRepo,
		logger:      log,
		now:         utils.TimeNow,
	}
}

type sentimentService struct {
	cfg         *config.Config
	symbols     *config.SymbolTable
	fetcher     NewsFetcher
	normalizer  TextNormalizer
	scorer      TextScorer
	sampler     Sampler
	newsAPIRepo repository.NewsAPIRepository
	rssRepo     repository.RSSRepository
	logger      *logger.Logger
	now         func() time.Time
}

// Symbols returns the tracked symbols.
func (s *sentimentService) Symbols() []string {
	if len(s.cfg.Sentiment.DefaultStocks) == 0 {
		return config.DefaultStocks
	}
	return s.cfg.Sentiment.DefaultStocks
}

// GetSentimentForStock aggregates the sentiment of the symbol's recent news.
// It falls back to a simulated record when no article can be scored.
func (s *sentimentService) GetSentimentForStock(ctx context.Context, symbol string) SentimentResult {
	articles := s.fetcher.Fetch(ctx, symbol)
	if len(articles) == 0 {
		return s.simulate(ctx, symbol, ErrNoArticles, nil)
	}

	var compound, positive, negative, neutral []float64
	for _, article := range articles {
		text := strings.TrimSpace(article.Text())
		if text == "" {
			continue
		}
		score := s.scorer.Score(s.normalizer.Normalize(text))
		compound = append(compound, score.Compound)
		positive = append(positive, score.Positive)
		negative = append(negative, score.Negative)
		neutral = append(neutral, score.Neutral)
	}
	if len(compound) == 0 {
		return s.simulate(ctx, symbol, ErrNoScorableArticles, articles)
	}

	avgCompound := utils.Mean(compound)
	record := entity.SentimentRecord{
		Symbol:         symbol,
		CompoundScore:  utils.Round(avgCompound, 3),
		PositiveScore:  utils.Round(utils.Mean(positive), 3),
		NegativeScore:  utils.Round(utils.Mean(negative), 3),
		NeutralScore:   utils.Round(utils.Mean(neutral), 3),
		SentimentLabel: Classify(avgCompound),
		NewsCount:      len(articles),
		Timestamp:      s.now(),
		Source:         common.SourceAggregated,
	}

	s.logger.DebugContext(ctx, "Aggregated sentiment",
		logger.StringField("symbol", symbol),
		logger.IntField("articles", len(articles)),
		logger.IntField("scored", len(compound)),
		logger.Float64Field("compound", record.CompoundScore))

	return SentimentResult{
		Record:     record,
		Provenance: ProvenanceAggregated,
		Articles:   articles,
	}
}

func (s *sentimentService) simulate(ctx context.Context, symbol string, reason error, articles []entity.NewsArticle) SentimentResult {
	profile := s.symbols.Profile(symbol)
	profile.Symbol = symbol
	record := SimulateSentiment(profile, s.sampler, s.now())

	s.logger.DebugContext(ctx, "Using simulated sentiment",
		logger.StringField("symbol", symbol),
		logger.StringField("reason", reason.Error()))

	return SentimentResult{
		Record:     record,
		Provenance: ProvenanceSimulated,
		Reason:     reason,
		Articles:   articles,
	}
}

// GetDetailedSentiment aggregates the symbol and describes the result.
func (s *sentimentService) GetDetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment {
	return s.DescribeSentiment(s.GetSentimentForStock(ctx, symbol))
}

// DescribeSentiment returns the result's record with a synthetic daily history,
// its trend and a per-source article breakdown.
func (s *sentimentService) DescribeSentiment(result SentimentResult) dto.DetailedSentiment {
	days := s.cfg.Sentiment.HistoryDays
	if days <= 0 {
		days = DefaultHistoryDays
	}
	noise := s.cfg.Sentiment.HistoryNoise
	if noise <= 0 {
		noise = DefaultHistoryNoise
	}
	threshold := s.cfg.Sentiment.TrendSlopeThreshold
	if threshold <= 0 {
		threshold = DefaultTrendSlopeThreshold
	}

	history := SynthesizeHistory(result.Record.CompoundScore, s.now(), days, noise, s.sampler)
	return dto.DetailedSentiment{
		CurrentSentiment:    result.Record,
		HistoricalSentiment: history,
		SentimentTrend:      EstimateTrend(history, threshold),
		NewsSources:         s.newsSources(result),
	}
}

func (s *sentimentService) newsSources(result SentimentResult) []dto.NewsSourceCount {
	if result.Simulated() {
		counts := make([]dto.NewsSourceCount, 0, len(simulatedSourceCounts))
		for _, src := range simulatedSourceCounts {
			counts = append(counts, dto.NewsSourceCount{Name: src.name, Count: s.sampler.IntRange(src.lo, src.hi)})
		}
		return counts
	}
	return CountSources(result.Articles)
}

// CountSources groups articles by source name in order of first appearance.
func CountSources(articles []entity.NewsArticle) []dto.NewsSourceCount {
	index := make(map[string]int)
	counts := make([]dto.NewsSourceCount, 0)
	for _, article := range articles {
		name := article.Source
		if name == "" {
			name = "Unknown"
		}
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, dto.NewsSourceCount{Name: name})
		}
		counts[i].Count++
	}
	return counts
}

// BuildOverview classifies the mean compound score of records. An empty input is neutral.
func BuildOverview(records []entity.SentimentRecord, now time.Time) dto.MarketOverview {
	overview := dto.MarketOverview{
		OverallSentiment:     dto.MarketNeutral,
		IndividualSentiments: make(map[string]entity.SentimentRecord, len(records)),
		Timestamp:            now,
	}
	if len(records) == 0 {
		return overview
	}

	scores := make([]float64, 0, len(records))
	for _, record := range records {
		overview.IndividualSentiments[record.Symbol] = record
		scores = append(scores, record.CompoundScore)
	}
	avg := utils.Mean(scores)
	overview.OverallSentiment = ClassifyMarket(avg)
	overview.AverageCompoundScore = utils.Round(avg, 3)
	return overview
}

// CheckSources probes the keyword-search API and the first RSS feed.
func (s *sentimentService) CheckSources(ctx context.Context) dto.SourceStatusResponse {
	var status dto.SourceStatusResponse

	if err := s.newsAPIRepo.TopHeadlines(ctx); err != nil {
		s.logger.WarnContext(ctx, "News API connectivity check failed", logger.ErrorField(err))
	} else {
		status.NewsAPI = true
	}

	if len(s.cfg.RSS.Feeds) > 0 {
		feed, err := s.rssRepo.Fetch(ctx, s.cfg.RSS.Feeds[0])
		if err != nil {
			s.logger.WarnContext(ctx, "RSS connectivity check failed", logger.ErrorField(err))
		} else {
			status.RSSFeeds = len(feed.Items) > 0
		}
	}

	return status
}
