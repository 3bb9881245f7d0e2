package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
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

func newTestServer(provider *mockProvider, sentimentRepo *mockSentimentRepo, newsRepo *mockNewsRepo) *echo.Echo {
	e := echo.New()
	g := e.Group("/api/v1")
	NewSentimentHandler(provider, sentimentRepo, logger.NewNop()).RegisterRoutes(g)
	NewNewsHandler(newsRepo, 10, logger.NewNop()).RegisterRoutes(g)
	NewHealthHandler(provider, logger.NewNop()).RegisterRoutes(g)
	return e
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetStocks(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Symbols").Return([]string{"AAPL", "MSFT"})
	e := newTestServer(provider, new(mockSentimentRepo), new(mockNewsRepo))

	rec := doGet(e, "/api/v1/stocks")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.StocksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"AAPL", "MSFT"}, body.Stocks)
}

func TestGetCurrentSentiment_UppercasesSymbol(t *testing.T) {
	provider := new(mockProvider)
	provider.On("CurrentSentiment", mock.Anything, "AAPL").Return(entity.SentimentRecord{
		Symbol: "AAPL", CompoundScore: 0.12, SentimentLabel: entity.SentimentPositive, Source: "aggregated",
	})
	e := newTestServer(provider, new(mockSentimentRepo), new(mockNewsRepo))

	rec := doGet(e, "/api/v1/sentiment/aapl/current")
	require.Equal(t, http.StatusOK, rec.Code)

	var body entity.SentimentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, entity.SentimentPositive, body.SentimentLabel)
	provider.AssertExpectations(t)
}

func TestInvalidSymbolIsRejected(t *testing.T) {
	provider := new(mockProvider)
	e := newTestServer(provider, new(mockSentimentRepo), new(mockNewsRepo))

	for _, path := range []string{
		"/api/v1/sentiment/1ABC",
		"/api/v1/sentiment/TOOLONGSYMBOL/current",
		"/api/v1/news/A$B",
	} {
		rec := doGet(e, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "invalid stock symbol")
	}
	provider.AssertNotCalled(t, "DetailedSentiment", mock.Anything, mock.Anything)
}

func TestGetDetailedSentiment(t *testing.T) {
	provider := new(mockProvider)
	provider.On("DetailedSentiment", mock.Anything, "MSFT").Return(dto.DetailedSentiment{
		CurrentSentiment: entity.SentimentRecord{Symbol: "MSFT"},
		SentimentTrend:   dto.TrendStable,
		HistoricalSentiment: []dto.HistoricalSentimentPoint{
			{Date: "2024-05-01", CompoundScore: 0.1},
		},
		NewsSources: []dto.NewsSourceCount{{Name: "Reuters", Count: 2}},
	})
	e := newTestServer(provider, new(mockSentimentRepo), new(mockNewsRepo))

	rec := doGet(e, "/api/v1/sentiment/MSFT")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sentiment_trend":"stable"`)
	assert.Contains(t, rec.Body.String(), `"news_sources":[{"name":"Reuters","count":2}]`)
}

func TestGetSentimentHistory(t *testing.T) {
	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("FindHistory", mock.Anything, "AAPL", mock.AnythingOfType("time.Time")).
		Return([]entity.SentimentRecord{{Symbol: "AAPL", CompoundScore: 0.2}}, nil)
	e := newTestServer(new(mockProvider), sentimentRepo, new(mockNewsRepo))

	rec := doGet(e, "/api/v1/sentiment/AAPL/history?days=30")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.SentimentHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 30, body.Days)
	assert.Len(t, body.Records, 1)

	assert.Equal(t, http.StatusBadRequest, doGet(e, "/api/v1/sentiment/AAPL/history?days=91").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(e, "/api/v1/sentiment/AAPL/history?days=abc").Code)
}

func TestGetSentimentHistory_RepositoryError(t *testing.T) {
	sentimentRepo := new(mockSentimentRepo)
	sentimentRepo.On("FindHistory", mock.Anything, "AAPL", mock.Anything).
		Return([]entity.SentimentRecord(nil), errors.New("db down"))
	e := newTestServer(new(mockProvider), sentimentRepo, new(mockNewsRepo))

	rec := doGet(e, "/api/v1/sentiment/AAPL/history")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetNews_ErrorReturnsEmptyList(t *testing.T) {
	newsRepo := new(mockNewsRepo)
	newsRepo.On("FindRecent", mock.Anything, "TSLA", 10).Return([]entity.NewsArticle(nil), errors.New("db down"))
	e := newTestServer(new(mockProvider), new(mockSentimentRepo), newsRepo)

	rec := doGet(e, "/api/v1/news/tsla")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"symbol":"TSLA","articles":[],"count":0}`, rec.Body.String())
}

func TestGetMarketOverviewAndSources(t *testing.T) {
	provider := new(mockProvider)
	provider.On("MarketOverview", mock.Anything).Return(dto.MarketOverview{
		OverallSentiment:     dto.MarketBearish,
		AverageCompoundScore: -0.07,
		IndividualSentiments: map[string]entity.SentimentRecord{},
	})
	provider.On("CheckSources", mock.Anything).Return(dto.SourceStatusResponse{NewsAPI: false, RSSFeeds: true})
	e := newTestServer(provider, new(mockSentimentRepo), new(mockNewsRepo))

	rec := doGet(e, "/api/v1/market/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"overall_sentiment":"bearish"`)

	rec = doGet(e, "/api/v1/health/sources")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"news_api":false,"rss_feeds":true}`, rec.Body.String())
}
