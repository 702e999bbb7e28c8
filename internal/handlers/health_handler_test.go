package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"lapak/internal/handlers"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// failingProber fails every probe for the URLs in down.
type failingProber struct {
	down map[string]bool
}

func (p *failingProber) Probe(url string) error {
	if p.down[url] {
		return errors.New("connection refused")
	}
	return nil
}

func setupGateway(down map[string]bool) *fiber.App {
	targets := []services.ServiceTarget{
		{Name: "catalog-service", URL: "http://localhost:8081/health"},
		{Name: "order-service", URL: "http://localhost:8082/health"},
	}
	healthService := services.NewHealthService(targets, &failingProber{down: down})

	app := fiber.New()
	handlers.NewDashboardHandler(healthService).RegisterRoutes(app)
	return app
}

func TestDashboardHealth_AllUp(t *testing.T) {
	app := setupGateway(nil)

	resp := doJSON(t, app, http.MethodGet, "/dashboard/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboard services.Dashboard
	decodeBody(t, resp, &dashboard)
	assert.Equal(t, services.StatusUp, dashboard.OverallStatus)
	assert.Equal(t, services.StatusUp, dashboard.Gateway)
	assert.Len(t, dashboard.Services, 2)
}

func TestDashboardHealth_Degraded(t *testing.T) {
	app := setupGateway(map[string]bool{"http://localhost:8082/health": true})

	resp := doJSON(t, app, http.MethodGet, "/dashboard/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboard services.Dashboard
	decodeBody(t, resp, &dashboard)
	assert.Equal(t, services.StatusDegraded, dashboard.OverallStatus)
	assert.Equal(t, services.StatusDown, dashboard.Services["order-service"].Status)
	assert.Equal(t, services.StatusUp, dashboard.Services["catalog-service"].Status)
}

func TestDashboardServices(t *testing.T) {
	app := setupGateway(map[string]bool{"http://localhost:8081/health": true})

	resp := doJSON(t, app, http.MethodGet, "/dashboard/services", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Timestamp string                            `json:"timestamp"`
		Services  map[string]services.ServiceHealth `json:"services"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Timestamp)
	assert.Len(t, body.Services, 2)

	catalog := body.Services["catalog-service"]
	assert.Equal(t, services.StatusDown, catalog.Status)
	assert.Equal(t, "http://localhost:8081/health", catalog.URL)
	assert.NotEmpty(t, catalog.Error)
}
