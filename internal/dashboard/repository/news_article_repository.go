package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsArticleRepository defines the interface for interacting with stored articles.
type NewsArticleRepository interface {
	CreateIgnoreConflict(ctx context.Context, articles []entity.NewsArticle) (int64, error)
	FindRecent(ctx context.Context, symbol string, limit int) ([]entity.NewsArticle, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// NewNewsArticleRepository creates a new instance of NewsArticleRepository.
func NewNewsArticleRepository(db *gorm.DB) NewsArticleRepository {
	return &newsArticleRepository{
		db: db,
	}
}

type newsArticleRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts articles, skipping the ones whose hash already exists.
// It returns the number of inserted rows.
func (r *newsArticleRepository) CreateIgnoreConflict(ctx context.Context, articles []entity.NewsArticle) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	for i := range articles {
		if articles[i].HashIdentifier == "" {
			articles[i].ComputeHash()
		}
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash_identifier"}},
		DoNothing: true,
	}).Create(&articles)
	if tx.Error != nil {
		return 0, fmt.Errorf("insert news articles: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

// FindRecent returns up to limit articles of symbol, newest first.
func (r *newsArticleRepository) FindRecent(ctx context.Context, symbol string, limit int) ([]entity.NewsArticle, error) {
	var articles []entity.NewsArticle
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("published_at DESC NULLS LAST").
		Order("created_at DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("find recent news for %s: %w", symbol, err)
	}
	return articles, nil
}

func (r *newsArticleRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&entity.NewsArticle{})
	return result.RowsAffected, result.Error
}
