package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/pesotrack/pesotrack_app/internal/middleware"
)

// recurringHandler handles HTTP requests for recurring definitions.
type recurringHandler struct {
	recurringSvc portssvc.RecurringSvcFacade
}

func newRecurringHandler(recurringSvc portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringSvc: recurringSvc}
}

// registerRecurringRoutes registers the /recurring routes.
func registerRecurringRoutes(group *gin.RouterGroup, recurringSvc portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringSvc)
	recurring := group.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.GET("/:definitionID", h.getRecurring)
		recurring.PUT("/:definitionID", h.updateRecurring)
		recurring.DELETE("/:definitionID", h.deleteRecurring)
	}
}

func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind recurring payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	def, err := h.recurringSvc.CreateRecurring(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create recurring definition", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recurring definition"})
		return
	}

	resp := dto.ToRecurringResponse(def)
	c.JSON(http.StatusCreated, resp)
}

func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	defs, err := h.recurringSvc.ListRecurring(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list recurring definitions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring definitions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring": dto.ToRecurringResponses(defs)})
}

func (h *recurringHandler) getRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	definitionID := c.Param("definitionID")

	def, err := h.recurringSvc.GetRecurring(c.Request.Context(), definitionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring definition not found"})
			return
		}
		logger.Error("Failed to get recurring definition", slog.String("error", err.Error()), slog.String("definition_id", definitionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recurring definition"})
		return
	}

	resp := dto.ToRecurringResponse(def)
	c.JSON(http.StatusOK, resp)
}

func (h *recurringHandler) updateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	definitionID := c.Param("definitionID")

	var req dto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind recurring update payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	def, err := h.recurringSvc.UpdateRecurring(c.Request.Context(), definitionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring definition not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update recurring definition", slog.String("error", err.Error()), slog.String("definition_id", definitionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring definition"})
		}
		return
	}

	resp := dto.ToRecurringResponse(def)
	c.JSON(http.StatusOK, resp)
}

func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	definitionID := c.Param("definitionID")

	if err := h.recurringSvc.DeleteRecurring(c.Request.Context(), definitionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring definition not found"})
			return
		}
		logger.Error("Failed to delete recurring definition", slog.String("error", err.Error()), slog.String("definition_id", definitionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recurring definition"})
		return
	}

	c.Status(http.StatusNoContent)
}
