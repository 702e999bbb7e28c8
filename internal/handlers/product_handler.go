package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog and its stock levels.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Reads and stock operations are
// open to any authenticated role; catalog mutation requires ADMIN.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	anyRole := middleware.RequireRoles(models.RoleClient, models.RoleAdmin)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", anyRole, h.HandleGetProducts)
	productRoutes.Get("/:id", anyRole, h.HandleGetProductByID)
	productRoutes.Post("/", adminOnly, h.HandleCreateProduct)
	productRoutes.Put("/:id", adminOnly, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", adminOnly, h.HandleDeleteProduct)
	productRoutes.Get("/:id/stock", anyRole, h.HandleCheckStock)
	productRoutes.Put("/:id/reduce-stock", anyRole, h.HandleReduceStock)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return errorResponse(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		log.Printf("Error getting product %s: %v", id, err)
		return errorResponse(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return errorResponse(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return errorResponse(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleCheckStock answers whether the product has at least ?quantity units
// on hand. The response body is a bare JSON boolean.
func (h *ProductHandler) HandleCheckStock(c *fiber.Ctx) error {
	id := c.Params("id")
	quantity := c.QueryInt("quantity")
	if quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "quantity must be a positive integer",
		})
	}

	available, err := h.service.CheckStock(id, quantity)
	if err != nil {
		log.Printf("Error checking stock for product %s: %v", id, err)
		return errorResponse(c, "Could not check stock", err)
	}
	return c.JSON(available)
}

// HandleReduceStock decrements the product's quantity by ?quantity units.
func (h *ProductHandler) HandleReduceStock(c *fiber.Ctx) error {
	id := c.Params("id")
	quantity := c.QueryInt("quantity")
	if quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "quantity must be a positive integer",
		})
	}

	if err := h.service.ReduceStock(id, quantity); err != nil {
		log.Printf("Error reducing stock for product %s: %v", id, err)
		return errorResponse(c, "Could not reduce stock", err)
	}
	return c.SendStatus(fiber.StatusOK)
}
