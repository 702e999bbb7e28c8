package repositories

import (
	"lapak/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created once and never updated, so there is no save/update operation.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
}
