package http

import (
	"net/http"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for stored news articles.
type NewsHandler struct {
	newsRepo repository.NewsArticleRepository
	limit    int
	logger   *logger.Logger
}

// NewNewsHandler creates a new NewsHandler returning at most limit articles.
func NewNewsHandler(newsRepo repository.NewsArticleRepository, limit int, logger *logger.Logger) *NewsHandler {
	if limit <= 0 {
		limit = 10
	}
	return &NewsHandler{newsRepo: newsRepo, limit: limit, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news/:symbol", h.GetNews)
}

// GetNews godoc
// @Summary Get recent news
// @Description Get the most recent stored news articles of a stock, newest first
// @Tags news
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /news/{symbol} [get]
func (h *NewsHandler) GetNews(c echo.Context) error {
	symbol, err := parseSymbol(c.Param("symbol"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	articles, err := h.newsRepo.FindRecent(ctx, symbol, h.limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get news", logger.ErrorField(err), logger.StringField("symbol", symbol))
		articles = []entity.NewsArticle{}
	}
	if articles == nil {
		articles = []entity.NewsArticle{}
	}

	return c.JSON(http.StatusOK, dto.NewsResponse{Symbol: symbol, Articles: articles, Count: len(articles)})
}
