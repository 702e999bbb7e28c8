package clients

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lapak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultStockTimeout bounds each stock call; expiry surfaces as a
// DownstreamError like any other transport failure.
const DefaultStockTimeout = 5 * time.Second

// StockClient calls the catalog service's stock endpoints over HTTP,
// forwarding the caller's bearer token unchanged on each request. It
// implements services.StockClient.
type StockClient struct {
	baseURL string
	timeout time.Duration
}

// NewStockClient creates a stock client for the catalog service at baseURL.
// A non-positive timeout falls back to DefaultStockTimeout.
func NewStockClient(baseURL string, timeout time.Duration) *StockClient {
	if timeout <= 0 {
		timeout = DefaultStockTimeout
	}
	return &StockClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// CheckStock asks the catalog service whether the product has at least
// quantity units on hand.
func (c *StockClient) CheckStock(productID string, quantity int, token string) (bool, error) {
	url := fmt.Sprintf("%s/products/%s/stock?quantity=%d", c.baseURL, productID, quantity)
	agent := fiber.Get(url)
	c.prepare(agent, token)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return false, &models.DownstreamError{Op: "checkStock", Err: errs[0]}
	}
	if err := statusError("checkStock", productID, code); err != nil {
		return false, err
	}

	available, err := strconv.ParseBool(strings.TrimSpace(string(body)))
	if err != nil {
		return false, &models.DownstreamError{Op: "checkStock", Err: fmt.Errorf("unexpected response body %q", body)}
	}
	return available, nil
}

// ReduceStock tells the catalog service to decrement the product's quantity.
func (c *StockClient) ReduceStock(productID string, quantity int, token string) error {
	url := fmt.Sprintf("%s/products/%s/reduce-stock?quantity=%d", c.baseURL, productID, quantity)
	agent := fiber.Put(url)
	c.prepare(agent, token)

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return &models.DownstreamError{Op: "reduceStock", Err: errs[0]}
	}
	return statusError("reduceStock", productID, code)
}

func (c *StockClient) prepare(agent *fiber.Agent, token string) {
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	agent.Timeout(c.timeout)
}

func statusError(op, productID string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == fiber.StatusNotFound:
		return &models.NotFoundError{Resource: "product", ID: productID}
	case code == fiber.StatusConflict:
		return &models.InsufficientStockError{ProductID: productID}
	default:
		return &models.DownstreamError{Op: op, Err: fmt.Errorf("unexpected status %d", code)}
	}
}
