package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"
)

// MarketDigestStrategy sends the market overview to Telegram.
type MarketDigestStrategy struct {
	logger   *logger.Logger
	provider service.SentimentProvider
	notifier telegram.Notifier
}

// NewMarketDigestStrategy creates a new MarketDigestStrategy.
func NewMarketDigestStrategy(log *logger.Logger, provider service.SentimentProvider, notifier telegram.Notifier) JobExecutionStrategy {
	return &MarketDigestStrategy{logger: log, provider: provider, notifier: notifier}
}

// GetType returns the job type this strategy handles.
func (s *MarketDigestStrategy) GetType() entity.JobType {
	return entity.JobTypeMarketDigest
}

// Execute formats the overview and sends it part by part.
func (s *MarketDigestStrategy) Execute(ctx context.Context) (string, error) {
	overview := s.provider.MarketOverview(ctx)
	messages := telegram.FormatMarketOverviewForTelegram(overview)

	for i, msg := range messages {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send market digest", logger.ErrorField(err), logger.IntField("part", i+1))
			return "", fmt.Errorf("failed to send market digest part %d: %w", i+1, err)
		}
	}

	resultJSON, err := json.Marshal(map[string]interface{}{
		"overall_sentiment": overview.OverallSentiment,
		"symbols":           len(overview.IndividualSentiments),
		"messages":          len(messages),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}
