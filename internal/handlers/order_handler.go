package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. Placement and own-order reads
// require CLIENT; the full listing requires ADMIN; reads by id accept either.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	clientOnly := middleware.RequireRoles(models.RoleClient)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	anyRole := middleware.RequireRoles(models.RoleClient, models.RoleAdmin)

	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", clientOnly, h.HandleCreateOrder)
	orderRoutes.Get("/", clientOnly, h.HandleGetMyOrders)
	orderRoutes.Get("/all", adminOnly, h.HandleGetAllOrders)
	orderRoutes.Get("/:id", anyRole, h.HandleGetOrderByID)
}

// identityFromCtx rebuilds the verified caller identity stashed by the auth
// middleware. The token is forwarded downstream exactly as received.
func identityFromCtx(c *fiber.Ctx) models.Identity {
	username, _ := c.Locals(middleware.LocalUsername).(string)
	token, _ := c.Locals(middleware.LocalBearerToken).(string)
	return models.Identity{
		Username: username,
		Token:    token,
	}
}

// HandleCreateOrder runs the order placement workflow for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	identity := identityFromCtx(c)
	order, err := h.service.PlaceOrder(identity, req)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", identity.Username, err)
		return errorResponse(c, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders retrieves the caller's own orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	identity := identityFromCtx(c)
	orders, err := h.service.GetOrdersByUser(identity.Username)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", identity.Username, err)
		return errorResponse(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetAllOrders retrieves every order.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return errorResponse(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}
