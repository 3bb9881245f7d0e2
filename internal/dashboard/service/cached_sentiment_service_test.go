package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingService is a SentimentService whose aggregation can be held open.
type countingService struct {
	calls    atomic.Int32
	release  chan struct{}
	compound float64
}

func (s *countingService) Symbols() []string { return []string{"AAPL", "MSFT"} }

// GetSentimentForStock degrades to a simulated record when ctx has ended, the way
// the real fetcher does once its rate limiter and feed loop stop.
func (s *countingService) GetSentimentForStock(ctx context.Context, symbol string) SentimentResult {
	s.calls.Add(1)
	if s.release != nil {
		<-s.release
	}
	if ctx.Err() != nil {
		return SentimentResult{
			Record:     entity.SentimentRecord{Symbol: symbol, Source: common.SourceSimulated},
			Provenance: ProvenanceSimulated,
			Reason:     ErrNoArticles,
		}
	}
	return SentimentResult{
		Record:     entity.SentimentRecord{Symbol: symbol, CompoundScore: s.compound, SentimentLabel: Classify(s.compound)},
		Provenance: ProvenanceAggregated,
	}
}

func (s *countingService) GetDetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment {
	return s.DescribeSentiment(s.GetSentimentForStock(ctx, symbol))
}

func (s *countingService) DescribeSentiment(result SentimentResult) dto.DetailedSentiment {
	return dto.DetailedSentiment{CurrentSentiment: result.Record, SentimentTrend: dto.TrendStable}
}

func (s *countingService) CheckSources(context.Context) dto.SourceStatusResponse {
	return dto.SourceStatusResponse{RSSFeeds: true}
}

func newTestProvider(svc SentimentService) (SentimentProvider, repository.CacheRepository) {
	cacheRepo := repository.NewMemoryCacheRepository(time.Minute, time.Minute)
	return NewSentimentProvider(svc, cacheRepo, time.Minute, logger.NewNop()), cacheRepo
}

func TestCurrentSentiment_CachesRecord(t *testing.T) {
	svc := &countingService{compound: 0.2}
	provider, _ := newTestProvider(svc)
	ctx := context.Background()

	first := provider.CurrentSentiment(ctx, "AAPL")
	second := provider.CurrentSentiment(ctx, "AAPL")

	assert.Equal(t, "AAPL", first.Symbol)
	assert.Equal(t, first.CompoundScore, second.CompoundScore)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestCurrentSentiment_CollapsesConcurrentMisses(t *testing.T) {
	svc := &countingService{compound: 0.1, release: make(chan struct{})}
	provider, _ := newTestProvider(svc)

	var wg sync.WaitGroup
	results := make([]entity.SentimentRecord, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = provider.CurrentSentiment(context.Background(), "MSFT")
		}(i)
	}

	require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(svc.release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "MSFT", r.Symbol)
	}
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestRefresh_ReplacesCachedRecord(t *testing.T) {
	svc := &countingService{compound: 0.1}
	provider, _ := newTestProvider(svc)
	ctx := context.Background()

	assert.Equal(t, 0.1, provider.CurrentSentiment(ctx, "AAPL").CompoundScore)

	svc.compound = -0.3
	result := provider.Refresh(ctx, "AAPL")
	assert.Equal(t, -0.3, result.Record.CompoundScore)
	assert.Equal(t, -0.3, provider.CurrentSentiment(ctx, "AAPL").CompoundScore)
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestDetailedSentiment_Cached(t *testing.T) {
	svc := &countingService{compound: 0.4}
	provider, _ := newTestProvider(svc)
	ctx := context.Background()

	d1 := provider.DetailedSentiment(ctx, "AAPL")
	d2 := provider.DetailedSentiment(ctx, "AAPL")

	assert.Equal(t, d1.CurrentSentiment.CompoundScore, d2.CurrentSentiment.CompoundScore)
	assert.Equal(t, dto.TrendStable, d2.SentimentTrend)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestMarketOverview_FromCachedRecords(t *testing.T) {
	svc := &countingService{compound: -0.1}
	provider, _ := newTestProvider(svc)

	overview := provider.MarketOverview(context.Background())

	assert.Equal(t, dto.MarketBearish, overview.OverallSentiment)
	assert.Equal(t, -0.1, overview.AverageCompoundScore)
	assert.Len(t, overview.IndividualSentiments, 2)
	assert.True(t, provider.CheckSources(context.Background()).RSSFeeds)
}

func TestCurrentSentiment_CancelledCallerDoesNotDegradeSharedResult(t *testing.T) {
	svc := &countingService{compound: 0.3}
	provider, cacheRepo := newTestProvider(svc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := provider.CurrentSentiment(ctx, "AAPL")
	assert.Equal(t, common.SourceAggregated, first.Source)
	assert.Equal(t, 0.3, first.CompoundScore)

	var cached entity.SentimentRecord
	found, err := cacheRepo.Get(context.Background(), "sentiment:current:AAPL", &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.3, cached.CompoundScore)

	second := provider.CurrentSentiment(context.Background(), "AAPL")
	assert.Equal(t, 0.3, second.CompoundScore)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestDetailedSentiment_CancelledCallerGetsAggregated(t *testing.T) {
	svc := &countingService{compound: -0.2}
	provider, _ := newTestProvider(svc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	detailed := provider.DetailedSentiment(ctx, "MSFT")

	assert.Equal(t, common.SourceAggregated, detailed.CurrentSentiment.Source)
	assert.Equal(t, -0.2, provider.CurrentSentiment(context.Background(), "MSFT").CompoundScore)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestRefresh_InterruptedKeepsCachedRecord(t *testing.T) {
	svc := &countingService{compound: 0.1}
	provider, _ := newTestProvider(svc)
	assert.Equal(t, 0.1, provider.CurrentSentiment(context.Background(), "AAPL").CompoundScore)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.compound = 0.9
	result := provider.Refresh(ctx, "AAPL")

	assert.True(t, result.Simulated())
	current := provider.CurrentSentiment(context.Background(), "AAPL")
	assert.Equal(t, common.SourceAggregated, current.Source)
	assert.Equal(t, 0.1, current.CompoundScore)
	assert.Equal(t, 0.1, provider.DetailedSentiment(context.Background(), "AAPL").CurrentSentiment.CompoundScore)
}

func TestRefresh_UpdatesDetailedView(t *testing.T) {
	svc := &countingService{compound: 0.2}
	provider, _ := newTestProvider(svc)
	ctx := context.Background()

	assert.Equal(t, 0.2, provider.DetailedSentiment(ctx, "AAPL").CurrentSentiment.CompoundScore)

	svc.compound = -0.4
	refreshed := provider.Refresh(ctx, "AAPL")

	detailed := provider.DetailedSentiment(ctx, "AAPL")
	assert.Equal(t, refreshed.Record, detailed.CurrentSentiment)
	assert.Equal(t, provider.CurrentSentiment(ctx, "AAPL"), detailed.CurrentSentiment)
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestMarketOverview_AggregatesEachSymbolOnce(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]entity.NewsArticle(nil))
	cfg := &config.Config{Sentiment: config.Sentiment{DefaultStocks: []string{"AAPL", "MSFT"}}}
	provider, _ := newTestProvider(newTestService(serviceDeps{cfg: cfg, fetcher: fetcher}))

	overview := provider.MarketOverview(context.Background())
	again := provider.MarketOverview(context.Background())

	assert.Equal(t, dto.MarketBullish, overview.OverallSentiment)
	assert.Equal(t, 0.125, overview.AverageCompoundScore)
	assert.Len(t, overview.IndividualSentiments, 2)
	assert.Equal(t, 0.15, overview.IndividualSentiments["MSFT"].CompoundScore)
	assert.Equal(t, overview.AverageCompoundScore, again.AverageCompoundScore)
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestMarketOverview_NoSymbols(t *testing.T) {
	provider, _ := newTestProvider(&emptyService{})

	overview := provider.MarketOverview(context.Background())

	assert.Equal(t, dto.MarketNeutral, overview.OverallSentiment)
	assert.Equal(t, 0.0, overview.AverageCompoundScore)
	assert.Empty(t, overview.IndividualSentiments)
}

type emptyService struct{ countingService }

func (*emptyService) Symbols() []string { return nil }
