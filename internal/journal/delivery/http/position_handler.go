package http

import (
	"errors"
	"net/http"

	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/service"
	"golang-crypto-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PositionHandler handles HTTP requests for journal positions.
type PositionHandler struct {
	journalService service.JournalService
	refreshService service.RefreshService
	logger         *logger.Logger
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(journalService service.JournalService, refreshService service.RefreshService, logger *logger.Logger) *PositionHandler {
	return &PositionHandler{journalService: journalService, refreshService: refreshService, logger: logger}
}

// RegisterRoutes registers the position routes to the Echo group.
func (h *PositionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/preview", h.Preview)
	g.POST("/refresh", h.Refresh)
	g.POST("", h.CreatePosition)
	g.GET("", h.ListPositions)
	g.DELETE("/:id", h.DeletePosition)
	g.PUT("/:id/note", h.UpdateNote)
}

// Preview godoc
// @Summary Preview PnL and ROI
// @Description Calculate PnL and ROI for a partially filled position form
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   position  body    dto.PositionRequest   true    "Position form"
// @Success 200 {object} engine.Result
// @Failure 400 {object} dto.ErrorResponse
// @Router /positions/preview [post]
func (h *PositionHandler) Preview(c echo.Context) error {
	var req dto.PositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	return c.JSON(http.StatusOK, h.journalService.Preview(c.Request().Context(), &req))
}

// CreatePosition godoc
// @Summary Record a position
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   position  body    dto.PositionRequest   true    "Position to record"
// @Success 201 {object} entity.Position
// @Failure 400 {object} dto.ErrorResponse
// @Router /positions [post]
func (h *PositionHandler) CreatePosition(c echo.Context) error {
	var req dto.PositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	position, err := h.journalService.CreatePosition(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteInput),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrEmptySymbol):
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to create position", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create position"})
	}

	return c.JSON(http.StatusCreated, position)
}

// ListPositions godoc
// @Summary List positions
// @Description Holding and closed positions, newest first
// @Tags positions
// @Produce  json
// @Success 200 {object} dto.PositionsResponse
// @Router /positions [get]
func (h *PositionHandler) ListPositions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.journalService.ListPositions(c.Request().Context()))
}

// DeletePosition godoc
// @Summary Delete a position
// @Description Unknown ids are ignored
// @Tags positions
// @Param   id  path    string true    "Position ID"
// @Success 204 {object} nil
// @Router /positions/{id} [delete]
func (h *PositionHandler) DeletePosition(c echo.Context) error {
	h.journalService.RemovePosition(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// UpdateNote godoc
// @Summary Replace a position note
// @Description Unknown ids are ignored
// @Tags positions
// @Accept  json
// @Param   id    path    string           true    "Position ID"
// @Param   note  body    dto.NoteRequest  true    "New note"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Router /positions/{id}/note [put]
func (h *PositionHandler) UpdateNote(c echo.Context) error {
	var req dto.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	h.journalService.UpdateNote(c.Request().Context(), c.Param("id"), req.Note)
	return c.NoContent(http.StatusNoContent)
}

// Refresh godoc
// @Summary Refresh holding prices now
// @Tags positions
// @Produce  json
// @Success 200 {object} dto.RefreshResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /positions/refresh [post]
func (h *PositionHandler) Refresh(c echo.Context) error {
	updated, err := h.refreshService.RefreshNow(c.Request().Context())
	if err != nil {
		h.logger.Warn("Manual price refresh failed", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto.RefreshResponse{Updated: updated})
}
