package entity

import (
	"time"

	"gorm.io/datatypes"
)

// MarketSnapshot stores a market-wide overview computed by the refresh job.
type MarketSnapshot struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	OverallSentiment     string         `gorm:"type:varchar(16);not null" json:"overall_sentiment"`
	AverageCompoundScore float64        `json:"average_compound_score"`
	SymbolCount          int            `json:"symbol_count"`
	IndividualSentiments datatypes.JSON `gorm:"type:jsonb" json:"individual_sentiments"`
	CreatedAt            time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (MarketSnapshot) TableName() string {
	return "market_sentiment_snapshots"
}
