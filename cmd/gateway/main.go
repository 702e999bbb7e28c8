package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"

	"lapak/internal/clients"
	"lapak/internal/handlers"
	"lapak/internal/services"
)

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("ORDER_SERVICE_URL", "http://localhost:8082")
	viper.SetDefault("PROBE_TIMEOUT", 3*time.Second)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	targets := []services.ServiceTarget{
		{Name: "catalog-service", URL: viper.GetString("PRODUCT_SERVICE_URL") + "/health"},
		{Name: "order-service", URL: viper.GetString("ORDER_SERVICE_URL") + "/health"},
	}

	prober := clients.NewHTTPProber(viper.GetDuration("PROBE_TIMEOUT"))
	healthService := services.NewHealthService(targets, prober)
	dashboardHandler := handlers.NewDashboardHandler(healthService)

	app := fiber.New()
	app.Use(logger.New())

	// The gateway's own health endpoint is the aggregated view.
	app.Get("/health", dashboardHandler.HandleHealth)
	dashboardHandler.RegisterRoutes(app)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting gateway on port %s", appPort)
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down gateway...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Gateway gracefully stopped")
}
