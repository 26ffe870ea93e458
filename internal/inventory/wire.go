//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/alejandrovrod/ecommerce-inventory/internal/inventory/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies.
// Publisher and cache are provided by main because both are optional at
// runtime.
func InitializeHTTPHandler(db *gorm.DB, catalogURL CatalogURL, publisher httpDelivery.MovementPublisher, cache *httpDelivery.AvailabilityCache) (*httpDelivery.InventoryHandler, error) {
	wire.Build(
		StoreSet,
		GatewaySet,
		httpDelivery.NewInventoryHandler,
	)
	return nil, nil
}
