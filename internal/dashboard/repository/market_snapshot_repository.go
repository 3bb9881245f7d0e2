package repository

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// MarketSnapshotRepository stores market-wide overviews.
type MarketSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.MarketSnapshot) error
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// NewMarketSnapshotRepository creates a new instance of MarketSnapshotRepository.
func NewMarketSnapshotRepository(db *gorm.DB) MarketSnapshotRepository {
	return &marketSnapshotRepository{db: db}
}

type marketSnapshotRepository struct {
	db *gorm.DB
}

func (r *marketSnapshotRepository) Create(ctx context.Context, snapshot *entity.MarketSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *marketSnapshotRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&entity.MarketSnapshot{})
	return result.RowsAffected, result.Error
}
