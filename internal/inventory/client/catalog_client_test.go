package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrovrod/ecommerce-inventory/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("catalog-client-test", false)
	os.Exit(m.Run())
}

func TestProductExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/1":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL)

	exists, err := client.ProductExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.ProductExists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductExistsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL)

	_, err := client.ProductExists(context.Background(), 1)
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL)

	for i := 0; i < 5; i++ {
		_, err := client.ProductExists(context.Background(), 1)
		require.Error(t, err)
	}

	// The breaker is open now; calls fail without reaching the server.
	_, err := client.ProductExists(context.Background(), 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
