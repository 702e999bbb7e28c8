package clients_test

import (
	"fmt"
	"net"
	"testing"
	"time"

	"lapak/internal/clients"
	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const testSecret = "stock_client_test_secret"

// startCatalog boots a catalog service on a free local port and returns its
// base URL plus the seeded product repository.
func startCatalog(t *testing.T) (string, *repositories.MockProductRepository) {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	productService := services.NewProductService(productRepo)
	productHandler := handlers.NewProductHandler(productService)
	verifier := services.NewTokenVerifier(testSecret)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handlers.RegisterLivenessRoute(app)
	protected := app.Group("", middleware.AuthRequired(verifier))
	productHandler.RegisterRoutes(protected)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	// Give the server a moment to start accepting.
	time.Sleep(100 * time.Millisecond)

	return fmt.Sprintf("http://%s", ln.Addr().String()), productRepo
}

func signToken(t *testing.T, roles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"roles":    roles,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, quantity int) string {
	t.Helper()
	product := &models.Product{Name: "Widget", Price: 9.99, Quantity: quantity}
	assert.NoError(t, repo.Create(product))
	return product.ID
}

func TestStockClient_CheckAndReduce(t *testing.T) {
	baseURL, repo := startCatalog(t)
	productID := seedProduct(t, repo, 5)
	token := signToken(t, []string{models.RoleClient})

	client := clients.NewStockClient(baseURL, 2*time.Second)

	available, err := client.CheckStock(productID, 3, token)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = client.CheckStock(productID, 6, token)
	assert.NoError(t, err)
	assert.False(t, available)

	// Reduce and verify the decrement landed.
	assert.NoError(t, client.ReduceStock(productID, 3, token))
	product, err := repo.GetByID(productID)
	assert.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)

	// Over-reduce maps the catalog's 409 to InsufficientStockError and
	// leaves the quantity untouched.
	err = client.ReduceStock(productID, 3, token)
	var stockErr *models.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productID, stockErr.ProductID)
	product, _ = repo.GetByID(productID)
	assert.Equal(t, 2, product.Quantity)
}

func TestStockClient_UnknownProduct(t *testing.T) {
	baseURL, _ := startCatalog(t)
	token := signToken(t, []string{models.RoleClient})

	client := clients.NewStockClient(baseURL, 2*time.Second)

	_, err := client.CheckStock("missing", 1, token)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "missing", notFoundErr.ID)

	err = client.ReduceStock("missing", 1, token)
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestStockClient_BadTokenIsDownstreamError(t *testing.T) {
	baseURL, repo := startCatalog(t)
	productID := seedProduct(t, repo, 5)

	client := clients.NewStockClient(baseURL, 2*time.Second)

	// The catalog rejects the token with 401; the order side sees that as a
	// failed downstream call, not as a stock answer.
	_, err := client.CheckStock(productID, 1, "not-a-valid-token")
	var downstreamErr *models.DownstreamError
	assert.ErrorAs(t, err, &downstreamErr)
}

func TestStockClient_UnreachableCatalog(t *testing.T) {
	// Nothing listens here.
	client := clients.NewStockClient("http://127.0.0.1:1", 500*time.Millisecond)
	token := signToken(t, []string{models.RoleClient})

	_, err := client.CheckStock("p1", 1, token)
	var downstreamErr *models.DownstreamError
	assert.ErrorAs(t, err, &downstreamErr)

	err = client.ReduceStock("p1", 1, token)
	assert.ErrorAs(t, err, &downstreamErr)
}

func TestStockClient_ForwardsBearerToken(t *testing.T) {
	// A role-less but valid token passes authentication and then fails the
	// role gate with 403, proving the header reached the catalog verbatim.
	baseURL, repo := startCatalog(t)
	productID := seedProduct(t, repo, 5)
	token := signToken(t, nil)

	client := clients.NewStockClient(baseURL, 2*time.Second)

	_, err := client.CheckStock(productID, 1, token)
	var downstreamErr *models.DownstreamError
	assert.ErrorAs(t, err, &downstreamErr)
	assert.Contains(t, err.Error(), "403")
}
