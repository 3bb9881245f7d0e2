package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Symbols() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockProvider) CurrentSentiment(ctx context.Context, symbol string) entity.SentimentRecord {
	return m.Called(ctx, symbol).Get(0).(entity.SentimentRecord)
}

func (m *mockProvider) DetailedSentiment(ctx context.Context, symbol string) dto.DetailedSentiment {
	return m.Called(ctx, symbol).Get(0).(dto.DetailedSentiment)
}

func (m *mockProvider) MarketOverview(ctx context.Context) dto.MarketOverview {
	return m.Called(ctx).Get(0).(dto.MarketOverview)
}

func (m *mockProvider) Refresh(ctx context.Context, symbol string) service.SentimentResult {
	return m.Called(ctx, symbol).Get(0).(service.SentimentResult)
}

func (m *mockProvider) CheckSources(ctx context.Context) dto.SourceStatusResponse {
	return m.Called(ctx).Get(0).(dto.SourceStatusResponse)
}

type mockSentimentRepo struct {
	mock.Mock
}

func (m *mockSentimentRepo) Create(ctx context.Context, record *entity.SentimentRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockSentimentRepo) CreateBatch(ctx context.Context, records []entity.SentimentRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockSentimentRepo) FindHistory(ctx context.Context, symbol string, since time.Time) ([]entity.SentimentRecord, error) {
	args := m.Called(ctx, symbol, since)
	return args.Get(0).([]entity.SentimentRecord), args.Error(1)
}

func (m *mockSentimentRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) Create(ctx context.Context, snapshot *entity.MarketSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockSnapshotRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockNewsRepo struct {
	mock.Mock
}

func (m *mockNewsRepo) CreateIgnoreConflict(ctx context.Context, articles []entity.NewsArticle) (int64, error) {
	args := m.Called(ctx, articles)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNewsRepo) FindRecent(ctx context.Context, symbol string, limit int) ([]entity.NewsArticle, error) {
	args := m.Called(ctx, symbol, limit)
	return args.Get(0).([]entity.NewsArticle), args.Error(1)
}

func (m *mockNewsRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) Publish(ctx context.Context, stream string, payload interface{}) error {
	return m.Called(ctx, stream, payload).Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, symbol string) []entity.NewsArticle {
	articles, _ := m.Called(ctx, symbol).Get(0).([]entity.NewsArticle)
	return articles
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendMessage(text string) error {
	return m.Called(text).Error(0)
}

type recordingBroadcaster struct {
	clients int
	updates []dto.SentimentUpdate
}

func (b *recordingBroadcaster) BroadcastSentiment(update dto.SentimentUpdate) int {
	b.updates = append(b.updates, update)
	return b.clients
}

func (b *recordingBroadcaster) ClientCount() int { return b.clients }

func TestSentimentRefreshStrategy_Execute(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Symbols").Return([]string{"AAPL", "MSFT"})
	provider.On("Refresh", mock.Anything, "AAPL").Return(service.SentimentResult{
		Record:     entity.SentimentRecord{Symbol: "AAPL", CompoundScore: 0.3, Source: common.SourceAggregated},
		Provenance: service.ProvenanceAggregated,
	})
	provider.On("Refresh", mock.Anything, "MSFT").Return(service.SentimentResult{
		Record:     entity.SentimentRecord{Symbol: "MSFT", CompoundScore: -0.1, Source: common.SourceSimulated},
		Provenance: service.ProvenanceSimulated,
		Reason:     service.ErrNoArticles,
	})

	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(r []entity.SentimentRecord) bool { return len(r) == 2 })).Return(nil)

	snapshotRepo := new(mockSnapshotRepo)
	snapshotRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.MarketSnapshot) bool {
		return s.OverallSentiment == string(dto.MarketBullish) && s.AverageCompoundScore == 0.1 && s.SymbolCount == 2
	})).Return(nil)

	streamRepo := new(mockStreamRepo)
	streamRepo.On("Publish", mock.Anything, common.RedisStreamSentimentUpdate, mock.Anything).Return(nil).Once()
	streamRepo.On("Publish", mock.Anything, common.RedisStreamSentimentUpdate, mock.Anything).Return(errors.New("redis down")).Once()

	job := NewSentimentRefreshStrategy(logger.NewNop(), provider, sentimentRepo, snapshotRepo, streamRepo)
	assert.Equal(t, entity.JobTypeSentimentRefresh, job.GetType())

	out, err := job.Execute(context.Background())
	require.NoError(t, err)

	var results []dto.SymbolJobResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].IsSuccess)
	assert.Equal(t, "aggregated", results[0].Source)
	assert.False(t, results[1].IsSuccess)
	assert.Equal(t, "redis down", results[1].Error)

	sentimentRepo.AssertExpectations(t)
	snapshotRepo.AssertExpectations(t)
}

func TestSentimentRefreshStrategy_SaveError(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Symbols").Return([]string{"AAPL"})
	provider.On("Refresh", mock.Anything, "AAPL").Return(service.SentimentResult{Record: entity.SentimentRecord{Symbol: "AAPL"}})
	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down"))
	streamRepo := new(mockStreamRepo)
	streamRepo.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	snapshotRepo := new(mockSnapshotRepo)

	job := NewSentimentRefreshStrategy(logger.NewNop(), provider, sentimentRepo, snapshotRepo, streamRepo)
	_, err := job.Execute(context.Background())

	assert.ErrorContains(t, err, "db down")
	snapshotRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSentimentBroadcastStrategy_Execute(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Symbols").Return([]string{"AAPL"})
	provider.On("CurrentSentiment", mock.Anything, "AAPL").Return(entity.SentimentRecord{
		Symbol: "AAPL", CompoundScore: 0.2, SentimentLabel: entity.SentimentPositive, NewsCount: 3,
	})

	broadcaster := &recordingBroadcaster{clients: 2}
	out, err := NewSentimentBroadcastStrategy(logger.NewNop(), provider, broadcaster).Execute(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"clients":2,"symbols":1,"delivered":2}`, out)
	require.Len(t, broadcaster.updates, 1)
	assert.Equal(t, 0.2, broadcaster.updates[0].SentimentScore)
	assert.Equal(t, "positive", broadcaster.updates[0].SentimentLabel)
}

func TestSentimentBroadcastStrategy_NoClients(t *testing.T) {
	provider := new(mockProvider)
	broadcaster := &recordingBroadcaster{}

	out, err := NewSentimentBroadcastStrategy(logger.NewNop(), provider, broadcaster).Execute(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"clients":0,"symbols":0,"delivered":0}`, out)
	provider.AssertNotCalled(t, "Symbols")
}

func TestNewsCollectStrategy_Execute(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, "AAPL").Return([]entity.NewsArticle{{Title: "a"}, {Title: "b"}})
	fetcher.On("Fetch", mock.Anything, "MSFT").Return([]entity.NewsArticle{{Title: "c"}})
	newsRepo := new(mockNewsRepo)
	newsRepo.On("CreateIgnoreConflict", mock.Anything, mock.MatchedBy(func(a []entity.NewsArticle) bool { return len(a) == 2 })).Return(int64(1), nil)
	newsRepo.On("CreateIgnoreConflict", mock.Anything, mock.MatchedBy(func(a []entity.NewsArticle) bool { return len(a) == 1 })).Return(int64(0), errors.New("db down"))

	symbols := func() []string { return []string{"AAPL", "MSFT"} }
	out, err := NewNewsCollectStrategy(logger.NewNop(), symbols, fetcher, newsRepo).Execute(context.Background())
	require.NoError(t, err)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, float64(2), results[0]["fetched"])
	assert.Equal(t, float64(1), results[0]["inserted"])
	assert.Equal(t, false, results[1]["is_success"])
}

func TestNewsCollectStrategy_AllFailed(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, "AAPL").Return([]entity.NewsArticle{{Title: "a"}})
	newsRepo := new(mockNewsRepo)
	newsRepo.On("CreateIgnoreConflict", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := NewNewsCollectStrategy(logger.NewNop(), func() []string { return []string{"AAPL"} }, fetcher, newsRepo).Execute(context.Background())
	assert.Error(t, err)
}

func TestMarketDigestStrategy_Execute(t *testing.T) {
	provider := new(mockProvider)
	provider.On("MarketOverview", mock.Anything).Return(dto.MarketOverview{
		OverallSentiment: dto.MarketNeutral,
		IndividualSentiments: map[string]entity.SentimentRecord{
			"AAPL": {Symbol: "AAPL", SentimentLabel: entity.SentimentNeutral},
		},
	})
	notifier := new(mockNotifier)
	notifier.On("SendMessage", mock.MatchedBy(func(s string) bool { return len(s) > 0 })).Return(nil).Once()

	out, err := NewMarketDigestStrategy(logger.NewNop(), provider, notifier).Execute(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_sentiment":"neutral","symbols":1,"messages":1}`, out)
	notifier.AssertExpectations(t)
}

func TestMarketDigestStrategy_SendError(t *testing.T) {
	provider := new(mockProvider)
	provider.On("MarketOverview", mock.Anything).Return(dto.MarketOverview{})
	notifier := new(mockNotifier)
	notifier.On("SendMessage", mock.Anything).Return(errors.New("forbidden"))

	_, err := NewMarketDigestStrategy(logger.NewNop(), provider, notifier).Execute(context.Background())
	assert.ErrorContains(t, err, "forbidden")
}

func TestDataCleanupStrategy_Execute(t *testing.T) {
	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("DeleteOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(5), nil)
	newsRepo := new(mockNewsRepo)
	newsRepo.On("DeleteOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)
	snapshotRepo := new(mockSnapshotRepo)
	snapshotRepo.On("DeleteOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(1), nil)

	job := NewDataCleanupStrategy(logger.NewNop(), 90, sentimentRepo, newsRepo, snapshotRepo)
	out, err := job.Execute(context.Background())
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, float64(5), result["sentiment_deleted"])
	assert.Equal(t, float64(3), result["news_deleted"])
	assert.Equal(t, float64(1), result["snapshots_deleted"])

	before := sentimentRepo.Calls[0].Arguments.Get(1).(time.Time)
	assert.WithinDuration(t, time.Now().Add(-90*24*time.Hour), before, time.Minute)
}

func TestDataCleanupStrategy_StopsOnError(t *testing.T) {
	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	newsRepo := new(mockNewsRepo)

	_, err := NewDataCleanupStrategy(logger.NewNop(), 0, sentimentRepo, newsRepo, new(mockSnapshotRepo)).Execute(context.Background())
	assert.Error(t, err)
	newsRepo.AssertNotCalled(t, "DeleteOlderThan", mock.Anything, mock.Anything)
}
