package services

import (
	"log"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic for the catalog and its stock levels.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return &models.ValidationError{Reason: err.Error()}
	}
	return s.repo.Create(product)
}

// UpdateProduct validates and updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return &models.ValidationError{Reason: err.Error()}
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// CheckStock reports whether the product has at least quantity units on hand.
// Read-only; a point-in-time answer, not a reservation.
func (s *ProductService) CheckStock(productID string, quantity int) (bool, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return false, err
	}
	return product.Quantity >= quantity, nil
}

// ReduceStock decrements a product's quantity. The decrement is atomic per
// product record; it fails with InsufficientStockError when quantity exceeds
// the on-hand amount, leaving the record unchanged.
func (s *ProductService) ReduceStock(productID string, quantity int) error {
	if err := s.repo.DecrementStock(productID, quantity); err != nil {
		return err
	}
	log.Printf("Reduced stock for product %s by %d", productID, quantity)
	return nil
}
