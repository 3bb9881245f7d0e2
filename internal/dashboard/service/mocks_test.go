package service

import (
	"context"
	"strings"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/nlp"

	"github.com/stretchr/testify/mock"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, symbol string) []entity.NewsArticle {
	articles, _ := m.Called(ctx, symbol).Get(0).([]entity.NewsArticle)
	return articles
}

type mockNewsAPIRepo struct {
	mock.Mock
}

func (m *mockNewsAPIRepo) Search(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsAPIArticle, error) {
	args := m.Called(ctx, param)
	articles, _ := args.Get(0).([]dto.NewsAPIArticle)
	return articles, args.Error(1)
}

func (m *mockNewsAPIRepo) TopHeadlines(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockNewsAPIRepo) Enabled() bool {
	return m.Called().Bool(0)
}

type mockRSSRepo struct {
	mock.Mock
}

func (m *mockRSSRepo) Fetch(ctx context.Context, feedURL string) (*dto.RSSFeed, error) {
	args := m.Called(ctx, feedURL)
	feed, _ := args.Get(0).(*dto.RSSFeed)
	return feed, args.Error(1)
}

type lowerNormalizer struct{}

func (lowerNormalizer) Normalize(text string) string { return strings.ToLower(text) }

// tableScorer scores text by exact lookup; unknown text is neutral.
type tableScorer map[string]nlp.ScoreComponents

func (t tableScorer) Score(text string) nlp.ScoreComponents {
	if s, ok := t[text]; ok {
		return s
	}
	return nlp.NeutralScore
}

// fixedSampler returns mean + stddev*z and the lower bound of every range.
type fixedSampler struct {
	z float64
}

func (f fixedSampler) Normal(mean, stddev float64) float64 { return mean + stddev*f.z }
func (f fixedSampler) IntRange(lo, hi int) int             { return lo }
