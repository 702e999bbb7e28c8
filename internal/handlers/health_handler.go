package handlers

import (
	"time"

	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterLivenessRoute exposes the unauthenticated per-service liveness
// endpoint the gateway polls.
func RegisterLivenessRoute(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": services.StatusUp,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// DashboardHandler serves the gateway's aggregated health view.
type DashboardHandler struct {
	health *services.HealthService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(health *services.HealthService) *DashboardHandler {
	return &DashboardHandler{
		health: health,
	}
}

// RegisterRoutes registers the dashboard routes with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Get("/health", h.HandleHealth)
	dashboardRoutes.Get("/services", h.HandleServices)
}

// HandleHealth polls every service and reduces to an overall status.
func (h *DashboardHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(h.health.CheckAll())
}

// HandleServices returns the per-service probe detail.
func (h *DashboardHandler) HandleServices(c *fiber.Ctx) error {
	dashboard := h.health.CheckAll()
	return c.JSON(fiber.Map{
		"timestamp": dashboard.Timestamp,
		"services":  dashboard.Services,
	})
}
