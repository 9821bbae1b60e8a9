package http

import (
	"errors"
	"net/http"

	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/service"
	"golang-crypto-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const mimeMarkdown = "text/markdown; charset=UTF-8"

// ReportHandler handles report export requests.
type ReportHandler struct {
	journalService service.JournalService
	logger         *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(journalService service.JournalService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.GenerateReport)
	g.POST("/enhanced", h.GenerateEnhancedReport)
	g.POST("/telegram", h.SendTelegram)
}

// GenerateReport godoc
// @Summary Markdown journal report
// @Tags reports
// @Accept  json
// @Produce  text/markdown
// @Param   report  body    dto.ReportRequest   false    "Summary and date"
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c echo.Context) error {
	req, err := bindReport(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	md, err := h.journalService.GenerateReport(c.Request().Context(), req)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.Blob(http.StatusOK, mimeMarkdown, []byte(md))
}

// GenerateEnhancedReport godoc
// @Summary AI-written journal report
// @Description Generator failures are returned as a labeled report text
// @Tags reports
// @Accept  json
// @Produce  text/markdown
// @Param   report  body    dto.ReportRequest   false    "Summary and date"
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Router /reports/enhanced [post]
func (h *ReportHandler) GenerateEnhancedReport(c echo.Context) error {
	req, err := bindReport(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	text, err := h.journalService.GenerateEnhancedReport(c.Request().Context(), req)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.Blob(http.StatusOK, mimeMarkdown, []byte(text))
}

// SendTelegram godoc
// @Summary Send the markdown report to Telegram
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   report  body    dto.ReportRequest   false    "Summary and date"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /reports/telegram [post]
func (h *ReportHandler) SendTelegram(c echo.Context) error {
	req, err := bindReport(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	text, err := h.journalService.SendReportTelegram(c.Request().Context(), req)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ReportResponse{Report: text, Sent: true})
}

func (h *ReportHandler) reportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrTelegramDisabled):
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	}
	h.logger.Error("Failed to produce report", logger.ErrorField(err))
	return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
}

// bindReport accepts an empty body as an empty request.
func bindReport(c echo.Context) (*dto.ReportRequest, error) {
	req := &dto.ReportRequest{}
	if c.Request().ContentLength == 0 {
		return req, nil
	}
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	return req, nil
}
