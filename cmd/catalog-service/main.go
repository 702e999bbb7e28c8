package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"
)

func main() {
	viper.SetDefault("APP_PORT", ":8081")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dsn := viper.GetString("DATABASE_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := openDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	seedProducts(productRepo)

	productService := services.NewProductService(productRepo)
	productHandler := handlers.NewProductHandler(productService)
	verifier := services.NewTokenVerifier(jwtSecret)

	app := fiber.New()
	app.Use(logger.New())

	handlers.RegisterLivenessRoute(app)

	protected := app.Group("", middleware.AuthRequired(verifier))
	productHandler.RegisterRoutes(protected)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting catalog service on port %s", appPort)
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog service...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Catalog service gracefully stopped")
}

// openDB connects to postgres when a DSN is configured and falls back to a
// local sqlite file otherwise.
func openDB(dsn string) (*gorm.DB, error) {
	if dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open("catalog.db"), &gorm.Config{})
}

// seedProducts populates an empty catalog with some initial data.
func seedProducts(repo repositories.ProductRepository) {
	existing, err := repo.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: 1200.00, Quantity: 10},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: 75.00, Quantity: 25},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25.00, Quantity: 50},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
}
