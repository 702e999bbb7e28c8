package repositories

import (
	"lapak/internal/models"
)

// ProductRepository defines the interface for catalog data access.
//
// DecrementStock must be atomic per product record: a concurrent decrement on
// the same product never interleaves with it. It returns *models.NotFoundError
// for an unknown id and *models.InsufficientStockError when the on-hand
// quantity is below qty, leaving the record unchanged in both cases.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	DecrementStock(id string, qty int) error
}
