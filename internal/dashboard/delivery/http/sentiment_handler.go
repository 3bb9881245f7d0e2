package http

import (
	"net/http"
	"strconv"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/labstack/echo/v4"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 90
)

// SentimentHandler handles HTTP requests for stock and market sentiment.
type SentimentHandler struct {
	provider      service.SentimentProvider
	sentimentRepo repository.SentimentRepository
	logger        *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(provider service.SentimentProvider, sentimentRepo repository.SentimentRepository, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{provider: provider, sentimentRepo: sentimentRepo, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stocks", h.GetStocks)
	g.GET("/sentiment/:symbol", h.GetDetailedSentiment)
	g.GET("/sentiment/:symbol/current", h.GetCurrentSentiment)
	g.GET("/sentiment/:symbol/history", h.GetSentimentHistory)
	g.GET("/market/overview", h.GetMarketOverview)
}

// GetStocks godoc
// @Summary List tracked stocks
// @Description Get the symbols whose sentiment is tracked
// @Tags stocks
// @Produce  json
// @Success 200 {object} dto.StocksResponse
// @Router /stocks [get]
func (h *SentimentHandler) GetStocks(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.StocksResponse{Stocks: h.provider.Symbols()})
}

// GetDetailedSentiment godoc
// @Summary Get detailed sentiment
// @Description Get the current sentiment of a stock with its 7-day history, trend and news sources
// @Tags sentiment
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Success 200 {object} dto.DetailedSentiment
// @Failure 400 {object} dto.ErrorResponse
// @Router /sentiment/{symbol} [get]
func (h *SentimentHandler) GetDetailedSentiment(c echo.Context) error {
	symbol, err := parseSymbol(c.Param("symbol"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.provider.DetailedSentiment(c.Request().Context(), symbol))
}

// GetCurrentSentiment godoc
// @Summary Get current sentiment
// @Description Get the current aggregated or simulated sentiment record of a stock
// @Tags sentiment
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Success 200 {object} entity.SentimentRecord
// @Failure 400 {object} dto.ErrorResponse
// @Router /sentiment/{symbol}/current [get]
func (h *SentimentHandler) GetCurrentSentiment(c echo.Context) error {
	symbol, err := parseSymbol(c.Param("symbol"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.provider.CurrentSentiment(c.Request().Context(), symbol))
}

// GetSentimentHistory godoc
// @Summary Get stored sentiment history
// @Description Get the sentiment records persisted by the refresh job
// @Tags sentiment
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Param   days    query   int    false   "Number of days (default 7, max 90)"
// @Success 200 {object} dto.SentimentHistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sentiment/{symbol}/history [get]
func (h *SentimentHandler) GetSentimentHistory(c echo.Context) error {
	symbol, err := parseSymbol(c.Param("symbol"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	days := defaultHistoryDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 || days > maxHistoryDays {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be between 1 and 90"})
		}
	}

	ctx := c.Request().Context()
	records, err := h.sentimentRepo.FindHistory(ctx, symbol, utils.DaysAgo(utils.TimeNow(), days))
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get sentiment history", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get sentiment history"})
	}

	return c.JSON(http.StatusOK, dto.SentimentHistoryResponse{Symbol: symbol, Days: days, Records: records})
}

// GetMarketOverview godoc
// @Summary Get market overview
// @Description Get the market-wide sentiment across all tracked stocks
// @Tags market
// @Produce  json
// @Success 200 {object} dto.MarketOverview
// @Router /market/overview [get]
func (h *SentimentHandler) GetMarketOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.provider.MarketOverview(c.Request().Context()))
}
