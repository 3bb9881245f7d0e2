package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"golang.org/x/sync/singleflight"
)

// SentimentProvider serves sentiment to the HTTP and WebSocket layers from a
// short-lived cache. Concurrent misses for the same key share one computation.
type SentimentProvider interface {
	Symbols() []string
	CurrentSentiment(ctx context.Context, symbol string) entity.SentimentRecord
	DetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment
	MarketOverview(ctx context.Context) dto.MarketOverview
	// Refresh recomputes the symbol's sentiment and replaces its cached record and detailed view.
	Refresh(ctx context.Context, symbol string) SentimentResult
	CheckSources(ctx context.Context) dto.SourceStatusResponse
}

// NewSentimentProvider creates a cached SentimentProvider over svc.
func NewSentimentProvider(svc SentimentService, cacheRepo repository.CacheRepository, ttl time.Duration, log *logger.Logger) SentimentProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cachedSentimentService{
		svc:       svc,
		cacheRepo: cacheRepo,
		ttl:       ttl,
		logger:    log,
	}
}

type cachedSentimentService struct {
	svc       SentimentService
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	logger    *logger.Logger
	group     singleflight.Group
}

func (s *cachedSentimentService) Symbols() []string {
	return s.svc.Symbols()
}

func (s *cachedSentimentService) CurrentSentiment(ctx context.Context, symbol string) entity.SentimentRecord {
	var record entity.SentimentRecord
	if s.lookup(ctx, fmt.Sprintf(common.RedisKeySentimentCurrent, symbol), &record) {
		return record
	}
	return s.compute(ctx, symbol).result.Record
}

func (s *cachedSentimentService) DetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment {
	var detailed dto.DetailedSentiment
	if s.lookup(ctx, fmt.Sprintf(common.RedisKeySentimentDetailed, symbol), &detailed) {
		return detailed
	}
	return s.compute(ctx, symbol).detailed
}

// MarketOverview builds the overview from the cached per-symbol records.
func (s *cachedSentimentService) MarketOverview(ctx context.Context) dto.MarketOverview {
	symbols := s.svc.Symbols()
	records := make([]entity.SentimentRecord, 0, len(symbols))
	for _, symbol := range symbols {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		records = append(records, s.CurrentSentiment(ctx, symbol))
	}
	return BuildOverview(records, utils.TimeNow())
}

// Refresh runs on the caller's context so job timeouts apply. A simulated result
// produced after that context ended is returned but not cached.
func (s *cachedSentimentService) Refresh(ctx context.Context, symbol string) SentimentResult {
	v, _, _ := s.group.Do("refresh:"+symbol, func() (interface{}, error) {
		result := s.svc.GetSentimentForStock(ctx, symbol)
		if ctx.Err() != nil && result.Simulated() {
			s.logger.WarnContext(ctx, "Skipping cache update for interrupted refresh",
				logger.StringField("symbol", symbol), logger.ErrorField(ctx.Err()))
			return result, nil
		}
		s.storeComputed(ctx, symbol, result, s.svc.DescribeSentiment(result))
		return result, nil
	})
	return v.(SentimentResult)
}

type computed struct {
	result   SentimentResult
	detailed dto.DetailedSentiment
}

// compute aggregates symbol once for all concurrent callers. The shared work is
// detached from the first caller's cancellation.
func (s *cachedSentimentService) compute(ctx context.Context, symbol string) computed {
	v, _, _ := s.group.Do("compute:"+symbol, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		result := s.svc.GetSentimentForStock(shared, symbol)
		c := computed{result: result, detailed: s.svc.DescribeSentiment(result)}
		s.storeComputed(shared, symbol, c.result, c.detailed)
		return c, nil
	})
	return v.(computed)
}

func (s *cachedSentimentService) storeComputed(ctx context.Context, symbol string, result SentimentResult, detailed dto.DetailedSentiment) {
	s.store(ctx, fmt.Sprintf(common.RedisKeySentimentCurrent, symbol), result.Record)
	s.store(ctx, fmt.Sprintf(common.RedisKeySentimentDetailed, symbol), detailed)
}

func (s *cachedSentimentService) CheckSources(ctx context.Context) dto.SourceStatusResponse {
	return s.svc.CheckSources(ctx)
}

func (s *cachedSentimentService) lookup(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cacheRepo.Get(ctx, key, dest)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read sentiment cache", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	return found
}

func (s *cachedSentimentService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cacheRepo.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "Failed to write sentiment cache", logger.StringField("key", key), logger.ErrorField(err))
	}
}
