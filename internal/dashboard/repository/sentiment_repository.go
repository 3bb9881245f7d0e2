package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// SentimentRepository defines the interface for interacting with sentiment records.
type SentimentRepository interface {
	Create(ctx context.Context, record *entity.SentimentRecord) error
	CreateBatch(ctx context.Context, records []entity.SentimentRecord) error
	FindHistory(ctx context.Context, symbol string, since time.Time) ([]entity.SentimentRecord, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// NewSentimentRepository creates a new instance of SentimentRepository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{
		db: db,
	}
}

type sentimentRepository struct {
	db *gorm.DB
}

func (r *sentimentRepository) Create(ctx context.Context, record *entity.SentimentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *sentimentRepository) CreateBatch(ctx context.Context, records []entity.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&records, 100).Error
}

// FindHistory returns the records of symbol at or after since, oldest first.
func (r *sentimentRepository) FindHistory(ctx context.Context, symbol string, since time.Time) ([]entity.SentimentRecord, error) {
	var records []entity.SentimentRecord
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND timestamp >= ?", symbol, since).
		Order("timestamp ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("find sentiment history for %s: %w", symbol, err)
	}
	return records, nil
}

func (r *sentimentRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", before).Delete(&entity.SentimentRecord{})
	return result.RowsAffected, result.Error
}
