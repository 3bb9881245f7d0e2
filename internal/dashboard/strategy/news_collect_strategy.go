package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// NewsCollectStrategy stores the fetched articles of every symbol.
type NewsCollectStrategy struct {
	logger   *logger.Logger
	symbols  func() []string
	fetcher  service.NewsFetcher
	newsRepo repository.NewsArticleRepository
}

// NewNewsCollectStrategy creates a new NewsCollectStrategy.
func NewNewsCollectStrategy(log *logger.Logger, symbols func() []string, fetcher service.NewsFetcher, newsRepo repository.NewsArticleRepository) JobExecutionStrategy {
	return &NewsCollectStrategy{logger: log, symbols: symbols, fetcher: fetcher, newsRepo: newsRepo}
}

// GetType returns the job type this strategy handles.
func (s *NewsCollectStrategy) GetType() entity.JobType {
	return entity.JobTypeNewsCollect
}

type newsCollectResult struct {
	dto.SymbolJobResult
	Fetched  int   `json:"fetched"`
	Inserted int64 `json:"inserted"`
}

// Execute fetches and stores news per symbol. Articles already stored are skipped.
func (s *NewsCollectStrategy) Execute(ctx context.Context) (string, error) {
	var results []newsCollectResult
	failed := 0

	for _, symbol := range s.symbols() {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		articles := s.fetcher.Fetch(ctx, symbol)
		result := newsCollectResult{
			SymbolJobResult: dto.SymbolJobResult{Symbol: symbol, IsSuccess: true},
			Fetched:         len(articles),
		}

		inserted, err := s.newsRepo.CreateIgnoreConflict(ctx, articles)
		if err != nil {
			s.logger.Error("Failed to save news articles", logger.ErrorField(err), logger.StringField("symbol", symbol))
			result.IsSuccess = false
			result.Error = err.Error()
			failed++
		}
		result.Inserted = inserted
		results = append(results, result)
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	if failed > 0 && failed == len(results) {
		return string(resultJSON), fmt.Errorf("failed to save news for all %d symbols", failed)
	}
	return string(resultJSON), nil
}
