package clients

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPProber probes liveness endpoints over HTTP. It implements
// services.Prober.
type HTTPProber struct {
	timeout time.Duration
}

// NewHTTPProber creates a prober with the given per-probe timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultStockTimeout
	}
	return &HTTPProber{timeout: timeout}
}

// Probe performs a GET against url and reports an error unless the service
// answers 2xx.
func (p *HTTPProber) Probe(url string) error {
	agent := fiber.Get(url)
	agent.Timeout(p.timeout)

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("unexpected status %d", code)
	}
	return nil
}
