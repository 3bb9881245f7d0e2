package http

import (
	"net/http"

	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles liveness and upstream connectivity checks.
type HealthHandler struct {
	provider service.SentimentProvider
	logger   *logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(provider service.SentimentProvider, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{provider: provider, logger: logger}
}

// RegisterRoutes registers the health routes to the Echo group.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/sources", h.CheckSources)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// CheckSources godoc
// @Summary Check news sources
// @Description Report whether the news API and the RSS feeds are reachable
// @Tags health
// @Produce  json
// @Success 200 {object} dto.SourceStatusResponse
// @Router /health/sources [get]
func (h *HealthHandler) CheckSources(c echo.Context) error {
	return c.JSON(http.StatusOK, h.provider.CheckSources(c.Request().Context()))
}
