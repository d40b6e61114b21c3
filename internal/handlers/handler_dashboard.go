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

// dashboardHandler serves the reconciled snapshot and the settlement action.
type dashboardHandler struct {
	dashboardSvc  portssvc.DashboardSvcFacade
	settlementSvc portssvc.SettlementSvcFacade
}

func newDashboardHandler(dashboardSvc portssvc.DashboardSvcFacade, settlementSvc portssvc.SettlementSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardSvc: dashboardSvc, settlementSvc: settlementSvc}
}

// registerDashboardRoutes registers the /dashboard and /settlements routes.
func registerDashboardRoutes(group *gin.RouterGroup, dashboardSvc portssvc.DashboardSvcFacade, settlementSvc portssvc.SettlementSvcFacade) {
	h := newDashboardHandler(dashboardSvc, settlementSvc)
	group.GET("/dashboard", h.getDashboard)
	group.POST("/settlements", h.settle)
}

func (h *dashboardHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.dashboardSvc.GetDashboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to assemble dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(snapshot))
}

func (h *dashboardHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind settlement payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.settlementSvc.Settle(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to settle obligation", slog.String("error", err.Error()), slog.String("obligation_id", req.ObligationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettleResponse(result))
}
