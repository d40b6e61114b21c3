package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerDashboardRoutes(v1, services.Dashboard, services.Settlement)
	registerTransactionRoutes(v1, services.Ledger)
	registerRecurringRoutes(v1, services.Recurring)
	registerDebtRoutes(v1, services.Debt)
	registerAccountRoutes(v1, services.Account)
}
