package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// Broadcaster pushes sentiment updates to connected clients.
type Broadcaster interface {
	BroadcastSentiment(update dto.SentimentUpdate) int
	ClientCount() int
}

// SentimentBroadcastStrategy pushes the current sentiment of every symbol to WebSocket clients.
type SentimentBroadcastStrategy struct {
	logger      *logger.Logger
	provider    service.SentimentProvider
	broadcaster Broadcaster
}

// NewSentimentBroadcastStrategy creates a new SentimentBroadcastStrategy.
func NewSentimentBroadcastStrategy(log *logger.Logger, provider service.SentimentProvider, broadcaster Broadcaster) JobExecutionStrategy {
	return &SentimentBroadcastStrategy{logger: log, provider: provider, broadcaster: broadcaster}
}

// GetType returns the job type this strategy handles.
func (s *SentimentBroadcastStrategy) GetType() entity.JobType {
	return entity.JobTypeSentimentBroadcast
}

type sentimentBroadcastResult struct {
	Clients   int `json:"clients"`
	Symbols   int `json:"symbols"`
	Delivered int `json:"delivered"`
}

// Execute broadcasts cached sentiment. Nothing is computed when no client is connected.
func (s *SentimentBroadcastStrategy) Execute(ctx context.Context) (string, error) {
	result := sentimentBroadcastResult{Clients: s.broadcaster.ClientCount()}

	if result.Clients > 0 {
		for _, symbol := range s.provider.Symbols() {
			if !utils.ShouldContinue(ctx, s.logger) {
				break
			}
			record := s.provider.CurrentSentiment(ctx, symbol)
			result.Delivered += s.broadcaster.BroadcastSentiment(toSentimentUpdate(record))
			result.Symbols++
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(resultJSON), nil
}
