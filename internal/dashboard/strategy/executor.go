package strategy

import (
	"context"

	"golang-stock-sentiment/internal/entity"
)

// JobExecutionStrategy defines the interface for the background jobs run by the scheduler.
type JobExecutionStrategy interface {
	// Execute runs the job once and returns a JSON summary of what it did.
	Execute(ctx context.Context) (string, error)
	GetType() entity.JobType
}
