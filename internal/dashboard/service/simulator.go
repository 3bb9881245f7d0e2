package service

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/utils"
)

// Sampler is the random source behind simulated records and synthetic history.
type Sampler interface {
	// Normal draws from N(mean, stddev).
	Normal(mean, stddev float64) float64
	// IntRange draws uniformly from [lo, hi).
	IntRange(lo, hi int) int
}

type randSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a goroutine-safe Sampler seeded with seed.
func NewSampler(seed uint64) Sampler {
	return &randSampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSampler returns a Sampler with a random seed.
func NewRandomSampler() Sampler {
	return NewSampler(rand.Uint64())
}

func (s *randSampler) Normal(mean, stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mean + stddev*s.rng.NormFloat64()
}

func (s *randSampler) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo)
}

// SimulateSentiment draws a plausible record from the profile's distribution.
// Positive, negative and neutral sum to 1 unless all three clip to zero.
func SimulateSentiment(profile entity.SymbolProfile, sampler Sampler, now time.Time) entity.SentimentRecord {
	compound := utils.Clip(sampler.Normal(profile.Base, profile.Volatility), -1, 1)

	var positive, negative float64
	if compound > 0 {
		positive = math.Abs(compound) + sampler.Normal(0, 0.1)
		negative = sampler.Normal(0, 0.05)
	} else {
		positive = sampler.Normal(0, 0.05)
		negative = math.Abs(compound) + sampler.Normal(0, 0.1)
	}
	positive = utils.Clip(positive, 0, 1)
	negative = utils.Clip(negative, 0, 1)
	neutral := math.Max(0, 1-positive-negative)

	if total := positive + negative + neutral; total > 0 {
		positive /= total
		negative /= total
		neutral /= total
	}

	return entity.SentimentRecord{
		Symbol:         profile.Symbol,
		CompoundScore:  utils.Round(compound, 3),
		PositiveScore:  utils.Round(positive, 3),
		NegativeScore:  utils.Round(negative, 3),
		NeutralScore:   utils.Round(neutral, 3),
		SentimentLabel: Classify(compound),
		NewsCount:      sampler.IntRange(5, 15),
		Timestamp:      now,
		Source:         common.SourceSimulated,
	}
}

// simulatedSourceCounts are the placeholder per-outlet article counts shown for simulated records.
var simulatedSourceCounts = []struct {
	name   string
	lo, hi int
}{
	{"Yahoo Finance", 2, 8},
	{"MarketWatch", 1, 5},
	{"Reuters", 1, 4},
	{"Bloomberg", 0, 3},
}
