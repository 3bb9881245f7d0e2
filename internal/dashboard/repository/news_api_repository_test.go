package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsAPIConfig(baseURL, key string) *config.Config {
	return &config.Config{
		NewsAPI: config.NewsAPI{
			BaseURL:             baseURL,
			APIKey:              key,
			Language:            "en",
			SortBy:              "publishedAt",
			PageSize:            10,
			MaxArticles:         5,
			MaxRequestPerMinute: 600,
			Timeout:             2 * time.Second,
		},
	}
}

func TestNewsAPIRepository_Search(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":        q.Get("q"),
			"language": q.Get("language"),
			"sortBy":   q.Get("sortBy"),
			"pageSize": q.Get("pageSize"),
			"apiKey":   q.Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"title":"Apple beats","description":"Strong iPhone sales","url":"https://x/1","source":{"name":"Reuters"},"publishedAt":"2024-05-01T10:00:00Z"},
			{"title":"Apple slips","description":null,"url":"https://x/2","source":{"name":"CNBC"},"publishedAt":null}
		]}`))
	}))
	defer srv.Close()

	repo := NewNewsAPIRepository(newsAPIConfig(srv.URL, "secret"), logger.NewNop())
	articles, err := repo.Search(context.Background(), dto.SearchNewsParam{Keywords: []string{"Apple", "iPhone", "AAPL"}})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Apple OR iPhone OR AAPL", gotQuery["q"])
	assert.Equal(t, "en", gotQuery["language"])
	assert.Equal(t, "publishedAt", gotQuery["sortBy"])
	assert.Equal(t, "10", gotQuery["pageSize"])
	assert.Equal(t, "secret", gotQuery["apiKey"])

	assert.Equal(t, "Reuters", articles[0].Source.Name)
	require.NotNil(t, articles[0].PublishedAt)
	assert.Equal(t, "", articles[1].Description)
	assert.Nil(t, articles[1].PublishedAt)
}

func TestNewsAPIRepository_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := NewNewsAPIRepository(newsAPIConfig(srv.URL, "secret"), logger.NewNop())
	_, err := repo.Search(context.Background(), dto.SearchNewsParam{Keywords: []string{"AAPL"}})
	assert.Error(t, err)
}

func TestNewsAPIRepository_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	repo := NewNewsAPIRepository(newsAPIConfig(srv.URL, "secret"), logger.NewNop())
	_, err := repo.Search(context.Background(), dto.SearchNewsParam{Keywords: []string{"AAPL"}})
	assert.Error(t, err)
}

func TestNewsAPIRepository_DisabledWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	for _, key := range []string{"", common.NewsAPIKeyPlaceholder} {
		repo := NewNewsAPIRepository(newsAPIConfig(srv.URL, key), logger.NewNop())
		assert.False(t, repo.Enabled())
		_, err := repo.Search(context.Background(), dto.SearchNewsParam{Keywords: []string{"AAPL"}})
		assert.ErrorIs(t, err, ErrNewsAPIDisabled)
		assert.ErrorIs(t, repo.TopHeadlines(context.Background()), ErrNewsAPIDisabled)
	}
	assert.False(t, called)
}

func TestNewsAPIRepository_TopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "business", r.URL.Query().Get("category"))
		assert.Equal(t, "1", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer srv.Close()

	repo := NewNewsAPIRepository(newsAPIConfig(srv.URL, "secret"), logger.NewNop())
	assert.NoError(t, repo.TopHeadlines(context.Background()))
}
