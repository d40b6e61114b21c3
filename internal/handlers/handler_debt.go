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

// debtHandler handles HTTP requests for amortized debts.
type debtHandler struct {
	debtSvc portssvc.DebtSvcFacade
}

func newDebtHandler(debtSvc portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtSvc: debtSvc}
}

// registerDebtRoutes registers the /debts routes.
func registerDebtRoutes(group *gin.RouterGroup, debtSvc portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtSvc)
	debts := group.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:debtID", h.getDebt)
		debts.PUT("/:debtID", h.updateDebt)
		debts.DELETE("/:debtID", h.deleteDebt)
	}
}

func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind debt payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	debt, err := h.debtSvc.CreateDebt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create debt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create debt"})
		return
	}

	summary, err := debt.Summary()
	if err != nil {
		logger.Error("Created debt failed amortization check", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create debt"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt, summary))
}

func (h *debtHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	debts, err := h.debtSvc.ListDebts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list debts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

func (h *debtHandler) getDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("debtID")

	debt, err := h.debtSvc.GetDebt(c.Request.Context(), debtID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
			return
		}
		logger.Error("Failed to get debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debt"})
		return
	}

	summary, err := debt.Summary()
	if err != nil {
		logger.Error("Stored debt failed amortization check", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debt"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, summary))
}

func (h *debtHandler) updateDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("debtID")

	var req dto.UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind debt update payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	debt, err := h.debtSvc.UpdateDebt(c.Request.Context(), debtID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update debt"})
		}
		return
	}

	summary, err := debt.Summary()
	if err != nil {
		logger.Error("Updated debt failed amortization check", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update debt"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, summary))
}

func (h *debtHandler) deleteDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("debtID")

	if err := h.debtSvc.DeleteDebt(c.Request.Context(), debtID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
			return
		}
		logger.Error("Failed to delete debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete debt"})
		return
	}

	c.Status(http.StatusNoContent)
}
