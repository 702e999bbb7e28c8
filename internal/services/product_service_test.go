package services_test

import (
	"testing"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(id string, qty int) error {
	args := m.Called(id, qty)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, Quantity: 100},
		{ID: "2", Name: "Product B", Price: 20.0, Quantity: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0, Quantity: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, &models.NotFoundError{Resource: "product", ID: "99"}).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Quantity: 20}

	// Test successful creation
	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Invalid products are rejected before the repository is touched.
	for _, invalid := range []*models.Product{
		{Name: "", Price: 10.0, Quantity: 1},
		{Name: "No Price", Price: 0, Quantity: 1},
		{Name: "Negative Stock", Price: 10.0, Quantity: -1},
	} {
		err = service.CreateProduct(invalid)
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	updatedProduct := &models.Product{ID: "1", Name: "Product A Updated", Price: 12.0, Quantity: 95}

	// Test successful update
	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (product missing)
	missing := &models.Product{ID: "99", Name: "NonExistent", Price: 1.0, Quantity: 1}
	mockRepo.On("Update", missing).Return(&models.NotFoundError{Resource: "product", ID: "99"}).Once()
	err = service.UpdateProduct(missing)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (product missing)
	mockRepo.On("Delete", "99").Return(&models.NotFoundError{Resource: "product", ID: "99"}).Once()
	err = service.DeleteProduct("99")
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CheckStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{ID: "p1", Name: "Widget", Price: 5.0, Quantity: 5}

	// Sufficient: quantity on hand >= requested.
	mockRepo.On("GetByID", "p1").Return(product, nil).Times(3)

	available, err := service.CheckStock("p1", 3)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = service.CheckStock("p1", 5)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = service.CheckStock("p1", 6)
	assert.NoError(t, err)
	assert.False(t, available)

	// Unknown product.
	mockRepo.On("GetByID", "missing").Return(nil, &models.NotFoundError{Resource: "product", ID: "missing"}).Once()
	available, err = service.CheckStock("missing", 1)
	assert.False(t, available)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ReduceStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("DecrementStock", "p1", 3).Return(nil).Once()
	assert.NoError(t, service.ReduceStock("p1", 3))

	mockRepo.On("DecrementStock", "p1", 99).
		Return(&models.InsufficientStockError{ProductID: "p1"}).Once()
	err := service.ReduceStock("p1", 99)
	var stockErr *models.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)

	mockRepo.On("DecrementStock", "missing", 1).
		Return(&models.NotFoundError{Resource: "product", ID: "missing"}).Once()
	err = service.ReduceStock("missing", 1)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	mockRepo.AssertExpectations(t)
}
