package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNewsAPIDisabled is returned when no usable API key is configured.
var ErrNewsAPIDisabled = errors.New("news api key not configured")

// NewsAPIRepository queries the keyword-search news API.
type NewsAPIRepository interface {
	Search(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsAPIArticle, error)
	TopHeadlines(ctx context.Context) error
	Enabled() bool
}

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a new instance of NewsAPIRepository.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsAPIRepository {
	perMinute := cfg.NewsAPI.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.NewsAPI.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// Enabled reports whether a real API key is configured.
func (r *newsAPIRepository) Enabled() bool {
	key := strings.TrimSpace(r.cfg.NewsAPI.APIKey)
	return key != "" && key != common.NewsAPIKeyPlaceholder
}

// Search returns the articles matching any of the keywords, newest first.
func (r *newsAPIRepository) Search(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsAPIArticle, error) {
	if !r.Enabled() {
		return nil, ErrNewsAPIDisabled
	}

	pageSize := param.PageSize
	if pageSize <= 0 {
		pageSize = r.cfg.NewsAPI.PageSize
	}

	query := url.Values{}
	query.Set("q", strings.Join(param.Keywords, " OR "))
	query.Set("language", r.cfg.NewsAPI.Language)
	query.Set("sortBy", r.cfg.NewsAPI.SortBy)
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("apiKey", r.cfg.NewsAPI.APIKey)

	body, err := r.sendRequest(ctx, "/everything", query)
	if err != nil {
		return nil, err
	}

	var response dto.NewsAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode news api response: %w", err)
	}
	if response.Status != "" && response.Status != "ok" {
		return nil, fmt.Errorf("news api error %s: %s", response.Code, response.Message)
	}

	r.log.DebugContext(ctx, "News API articles found",
		logger.StringField("query", query.Get("q")),
		logger.IntField("count", len(response.Articles)))

	return response.Articles, nil
}

// TopHeadlines performs the minimal request used as a connectivity probe.
func (r *newsAPIRepository) TopHeadlines(ctx context.Context) error {
	if !r.Enabled() {
		return ErrNewsAPIDisabled
	}

	query := url.Values{}
	query.Set("country", "us")
	query.Set("category", "business")
	query.Set("pageSize", "1")
	query.Set("apiKey", r.cfg.NewsAPI.APIKey)

	_, err := r.sendRequest(ctx, "/top-headlines", query)
	return err
}

func (r *newsAPIRepository) sendRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(r.cfg.NewsAPI.BaseURL, "/") + path
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.NewsAPI.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to News API", fields...)
		return nil, fmt.Errorf("news api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from News API", fields...)
		return nil, fmt.Errorf("news api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from News API", fields...)
		return nil, err
	}

	return body, nil
}
