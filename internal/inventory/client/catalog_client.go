package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/alejandrovrod/ecommerce-inventory/pkg/logger"
)

// CatalogClient checks product existence against the product service
// REST API. Calls are traced and guarded by a circuit breaker so a
// flapping catalog cannot stall stock creation indefinitely.
type CatalogClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[bool]
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(baseURL string) *CatalogClient {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog circuit breaker state changed")
		},
	}

	return &CatalogClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   3 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
	}
}

// ProductExists reports whether the catalog knows the product. A 404 is
// a definitive "no"; transport failures and 5xx responses count against
// the breaker and propagate as errors.
func (c *CatalogClient) ProductExists(ctx context.Context, productID uint) (bool, error) {
	return c.breaker.Execute(func() (bool, error) {
		url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, fmt.Errorf("failed to build catalog request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return false, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return true, nil
		case resp.StatusCode == http.StatusNotFound:
			return false, nil
		default:
			return false, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}
	})
}
