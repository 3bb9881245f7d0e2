package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// DataCleanupStrategy deletes stored data older than the retention window.
type DataCleanupStrategy struct {
	logger        *logger.Logger
	retentionDays int
	sentimentRepo repository.SentimentRepository
	newsRepo      repository.NewsArticleRepository
	snapshotRepo  repository.MarketSnapshotRepository
}

// NewDataCleanupStrategy creates a new DataCleanupStrategy.
func NewDataCleanupStrategy(
	log *logger.Logger,
	retentionDays int,
	sentimentRepo repository.SentimentRepository,
	newsRepo repository.NewsArticleRepository,
	snapshotRepo repository.MarketSnapshotRepository,
) JobExecutionStrategy {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &DataCleanupStrategy{
		logger:        log,
		retentionDays: retentionDays,
		sentimentRepo: sentimentRepo,
		newsRepo:      newsRepo,
		snapshotRepo:  snapshotRepo,
	}
}

// GetType returns the job type this strategy handles.
func (s *DataCleanupStrategy) GetType() entity.JobType {
	return entity.JobTypeDataCleanup
}

type dataCleanupResult struct {
	Before    string `json:"before"`
	Sentiment int64  `json:"sentiment_deleted"`
	News      int64  `json:"news_deleted"`
	Snapshots int64  `json:"snapshots_deleted"`
}

func (s *DataCleanupStrategy) Execute(ctx context.Context) (string, error) {
	before := utils.DaysAgo(utils.TimeNow(), s.retentionDays)
	result := dataCleanupResult{Before: before.Format(utils.DateLayout)}

	var err error
	if result.Sentiment, err = s.sentimentRepo.DeleteOlderThan(ctx, before); err != nil {
		return "", fmt.Errorf("failed to delete old sentiment data: %w", err)
	}
	if result.News, err = s.newsRepo.DeleteOlderThan(ctx, before); err != nil {
		return "", fmt.Errorf("failed to delete old news articles: %w", err)
	}
	if result.Snapshots, err = s.snapshotRepo.DeleteOlderThan(ctx, before); err != nil {
		return "", fmt.Errorf("failed to delete old market snapshots: %w", err)
	}

	s.logger.Info("Old data cleaned up",
		logger.StringField("before", result.Before),
		logger.Field("sentiment_deleted", result.Sentiment),
		logger.Field("news_deleted", result.News),
		logger.Field("snapshots_deleted", result.Snapshots))

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}
