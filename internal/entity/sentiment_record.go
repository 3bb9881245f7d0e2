package entity

import "time"

// SentimentLabel classifies a compound score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentRecord is the symbol-level sentiment produced for one request.
type SentimentRecord struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Symbol         string         `gorm:"type:varchar(16);not null;index" json:"symbol"`
	CompoundScore  float64        `json:"compound_score"`
	PositiveScore  float64        `json:"positive_score"`
	NegativeScore  float64        `json:"negative_score"`
	NeutralScore   float64        `json:"neutral_score"`
	SentimentLabel SentimentLabel `gorm:"type:varchar(16)" json:"sentiment_label"`
	NewsCount      int            `json:"news_count"`
	Timestamp      time.Time      `gorm:"index" json:"timestamp"`
	Source         string         `gorm:"type:varchar(16)" json:"source"`
}

// TableName specifies the table name for the SentimentRecord model.
func (SentimentRecord) TableName() string {
	return "sentiment_data"
}
