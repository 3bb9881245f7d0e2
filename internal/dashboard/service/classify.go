package service

import (
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/entity"
)

// LabelThreshold is the only classification boundary: scores at or beyond ±0.05 are polar.
const LabelThreshold = 0.05

// Classify maps a compound score to a sentiment label.
func Classify(compound float64) entity.SentimentLabel {
	switch {
	case compound >= LabelThreshold:
		return entity.SentimentPositive
	case compound <= -LabelThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

// ClassifyMarket maps a cross-symbol mean compound score to a market label.
func ClassifyMarket(compound float64) dto.MarketLabel {
	switch Classify(compound) {
	case entity.SentimentPositive:
		return dto.MarketBullish
	case entity.SentimentNegative:
		return dto.MarketBearish
	default:
		return dto.MarketNeutral
	}
}
