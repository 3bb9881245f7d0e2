package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"gorm.io/datatypes"
)

// SentimentRefreshStrategy recomputes every symbol's sentiment, persists it and
// publishes it on the update stream.
type SentimentRefreshStrategy struct {
	logger        *logger.Logger
	provider      service.SentimentProvider
	sentimentRepo repository.SentimentRepository
	snapshotRepo  repository.MarketSnapshotRepository
	streamRepo    repository.StreamRepository
}

// NewSentimentRefreshStrategy creates a new SentimentRefreshStrategy.
func NewSentimentRefreshStrategy(
	log *logger.Logger,
	provider service.SentimentProvider,
	sentimentRepo repository.SentimentRepository,
	snapshotRepo repository.MarketSnapshotRepository,
	streamRepo repository.StreamRepository,
) JobExecutionStrategy {
	return &SentimentRefreshStrategy{
		logger:        log,
		provider:      provider,
		sentimentRepo: sentimentRepo,
		snapshotRepo:  snapshotRepo,
		streamRepo:    streamRepo,
	}
}

// GetType returns the job type this strategy handles.
func (s *SentimentRefreshStrategy) GetType() entity.JobType {
	return entity.JobTypeSentimentRefresh
}

// Execute refreshes all tracked symbols and stores the resulting market snapshot.
func (s *SentimentRefreshStrategy) Execute(ctx context.Context) (string, error) {
	symbols := s.provider.Symbols()
	results := make([]dto.SymbolJobResult, 0, len(symbols))
	records := make([]entity.SentimentRecord, 0, len(symbols))

	for _, symbol := range symbols {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		result := s.provider.Refresh(ctx, symbol)
		records = append(records, result.Record)

		jobResult := dto.SymbolJobResult{Symbol: symbol, Source: string(result.Provenance), IsSuccess: true}
		if err := s.streamRepo.Publish(ctx, common.RedisStreamSentimentUpdate, toSentimentUpdate(result.Record)); err != nil {
			s.logger.Error("Failed to publish sentiment update", logger.ErrorField(err), logger.StringField("symbol", symbol))
			jobResult.IsSuccess = false
			jobResult.Error = err.Error()
		}
		results = append(results, jobResult)
	}

	if err := s.sentimentRepo.CreateBatch(ctx, records); err != nil {
		s.logger.Error("Failed to save sentiment records", logger.ErrorField(err))
		return "", fmt.Errorf("failed to save sentiment records: %w", err)
	}

	if err := s.saveSnapshot(ctx, records); err != nil {
		s.logger.Error("Failed to save market snapshot", logger.ErrorField(err))
		return "", err
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}

func (s *SentimentRefreshStrategy) saveSnapshot(ctx context.Context, records []entity.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}

	overview := service.BuildOverview(records, utils.TimeNow())
	individual, err := json.Marshal(overview.IndividualSentiments)
	if err != nil {
		return fmt.Errorf("failed to marshal individual sentiments: %w", err)
	}

	return s.snapshotRepo.Create(ctx, &entity.MarketSnapshot{
		OverallSentiment:     string(overview.OverallSentiment),
		AverageCompoundScore: overview.AverageCompoundScore,
		SymbolCount:          len(records),
		IndividualSentiments: datatypes.JSON(individual),
	})
}

func toSentimentUpdate(record entity.SentimentRecord) dto.SentimentUpdate {
	return dto.SentimentUpdate{
		Symbol:         record.Symbol,
		SentimentScore: record.CompoundScore,
		SentimentLabel: string(record.SentimentLabel),
		NewsCount:      record.NewsCount,
		Source:         record.Source,
		Timestamp:      record.Timestamp,
	}
}
