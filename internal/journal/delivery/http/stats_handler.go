package http

import (
	"net/http"
	"strconv"
	"time"

	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/service"
	"golang-crypto-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatsHandler serves account totals, the PnL calendar and coin search.
type StatsHandler struct {
	journalService service.JournalService
	logger         *logger.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(journalService service.JournalService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the stats routes to the Echo group.
func (h *StatsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
	g.GET("/calendar", h.GetCalendar)
	g.GET("/coins/search", h.SearchCoins)
}

// GetStats godoc
// @Summary Account totals and win rate
// @Tags stats
// @Produce  json
// @Success 200 {object} aggregator.Summary
// @Router /stats [get]
func (h *StatsHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.journalService.Stats(c.Request().Context()))
}

// GetCalendar godoc
// @Summary Monthly realized PnL calendar
// @Description Defaults to the current month
// @Tags stats
// @Produce  json
// @Param   year   query   int false "Year"
// @Param   month  query   int false "Month (1-12)"
// @Success 200 {object} aggregator.MonthCalendar
// @Failure 400 {object} dto.ErrorResponse
// @Router /calendar [get]
func (h *StatsHandler) GetCalendar(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid year"})
		}
		year = y
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid month"})
		}
		month = m
	}

	return c.JSON(http.StatusOK, h.journalService.Calendar(c.Request().Context(), year, time.Month(month)))
}

// SearchCoins godoc
// @Summary Coin autocomplete
// @Tags coins
// @Produce  json
// @Param   q  query   string true "Symbol or name fragment"
// @Success 200 {array} entity.Quote
// @Failure 502 {object} dto.ErrorResponse
// @Router /coins/search [get]
func (h *StatsHandler) SearchCoins(c echo.Context) error {
	quotes, err := h.journalService.SearchCoins(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to search coins", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Failed to search coins"})
	}
	return c.JSON(http.StatusOK, quotes)
}
