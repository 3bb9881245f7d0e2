package entity

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/lib/pq"
)

// NewsArticle is a candidate article fetched for a symbol.
type NewsArticle struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	URL            string         `gorm:"column:url" json:"url"`
	Source         string         `json:"source"`
	PublishedAt    *time.Time     `json:"published_date,omitempty"`
	Symbol         string         `gorm:"type:varchar(16);not null;index" json:"symbol"`
	Keywords       pq.StringArray `gorm:"type:text[]" json:"-"`
	HashIdentifier string         `gorm:"unique;not null" json:"-"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"-"`
}

// TableName specifies the table name for the NewsArticle model.
func (NewsArticle) TableName() string {
	return "news_articles"
}

// Text is the string that gets normalized and scored.
func (a NewsArticle) Text() string {
	return a.Title + " " + a.Description
}

// ComputeHash fills HashIdentifier from symbol, url and publish time.
func (a *NewsArticle) ComputeHash() string {
	published := ""
	if a.PublishedAt != nil {
		published = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	sum := md5.Sum([]byte(a.Symbol + "|" + a.URL + "|" + published))
	a.HashIdentifier = hex.EncodeToString(sum[:])
	return a.HashIdentifier
}
