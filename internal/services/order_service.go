package services

import (
	"fmt"
	"log"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// StockClient is the order service's view of the catalog service's stock
// operations. Every call carries the caller's bearer token, forwarded
// unchanged, so the catalog service can re-authorize the request.
type StockClient interface {
	CheckStock(productID string, quantity int, token string) (bool, error)
	ReduceStock(productID string, quantity int, token string) error
}

// EventPublisher publishes order lifecycle events. A nil publisher disables
// publishing; publish failures never fail the order.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// OrderService handles order placement and order reads.
type OrderService struct {
	orderRepo repositories.OrderRepository
	stock     StockClient
	publisher EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, stock StockClient, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		stock:     stock,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// PlaceOrder runs the order placement workflow for the given caller:
//
//  1. Validate the request locally; invalid requests never reach the network.
//  2. Check stock for each item, in request order, one call at a time. The
//     first insufficient item aborts the whole request; items already checked
//     are not reserved.
//  3. Compute the total from the caller-supplied unit prices.
//  4. Persist the order as PENDING. This is the durability point.
//  5. Reduce stock for each item, in the same order. A failure here surfaces
//     to the caller but the persisted order stays; there is no compensation,
//     so stock for earlier items remains decremented.
func (s *OrderService) PlaceOrder(identity models.Identity, req models.OrderRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &models.ValidationError{Reason: err.Error()}
	}

	log.Printf("User %s placing order with %d items", identity.Username, len(req.Items))

	for _, item := range req.Items {
		available, err := s.stock.CheckStock(item.ProductID, item.Quantity, identity.Token)
		if err != nil {
			return nil, err
		}
		if !available {
			log.Printf("Insufficient stock for product %s requested by user %s", item.ProductID, identity.Username)
			return nil, &models.InsufficientStockError{ProductID: item.ProductID}
		}
	}

	var amount float64
	for _, item := range req.Items {
		amount += item.Price * float64(item.Quantity)
	}

	order := &models.Order{
		ID:     uuid.New().String(),
		Date:   time.Now(),
		Status: models.OrderStatusPending,
		Amount: amount,
		UserID: identity.Username,
		Items:  req.Items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	log.Printf("Order %s created for user %s", order.ID, identity.Username)

	for _, item := range req.Items {
		if err := s.stock.ReduceStock(item.ProductID, item.Quantity, identity.Token); err != nil {
			// The order is already persisted; the remaining reduces are
			// skipped and nothing is rolled back.
			log.Printf("Stock reduction failed for product %s on order %s: %v", item.ProductID, order.ID, err)
			return nil, err
		}
	}

	s.publishOrderCreated(order)

	return order, nil
}

// GetOrdersByUser retrieves the orders owned by a user.
func (s *OrderService) GetOrdersByUser(username string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(username)
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Amount,
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order created event for order %s", order.ID)
}
