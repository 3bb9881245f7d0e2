package service

import (
	"time"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/utils"
)

const (
	DefaultTrendSlopeThreshold = 0.02
	DefaultHistoryDays         = 7
	DefaultHistoryNoise        = 0.1
	minTrendPoints             = 3
)

// EstimateTrend fits a least-squares line through the scores against their
// positions 0..n-1 and classifies its slope. Fewer than three points are stable.
func EstimateTrend(points []dto.HistoricalSentimentPoint, threshold float64) dto.Trend {
	if len(points) < minTrendPoints {
		return dto.TrendStable
	}

	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.CompoundScore
	}

	slope := olsSlope(scores)
	switch {
	case slope > threshold:
		return dto.TrendImproving
	case slope < -threshold:
		return dto.TrendDeclining
	default:
		return dto.TrendStable
	}
}

func olsSlope(ys []float64) float64 {
	n := float64(len(ys))
	meanX := (n - 1) / 2
	meanY := utils.Mean(ys)

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// SynthesizeHistory fabricates a daily series around current, from today back
// to days-1 days ago, each point jittered by N(0, noise) and clipped to [-1, 1].
func SynthesizeHistory(current float64, now time.Time, days int, noise float64, sampler Sampler) []dto.HistoricalSentimentPoint {
	points := make([]dto.HistoricalSentimentPoint, 0, days)
	for i := 0; i < days; i++ {
		score := utils.Clip(current+sampler.Normal(0, noise), -1, 1)
		points = append(points, dto.HistoricalSentimentPoint{
			Date:          utils.DaysAgo(now, i).Format(utils.DateLayout),
			CompoundScore: utils.Round(score, 3),
		})
	}
	return points
}
