package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/client"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/repository"
)

// CatalogURL is the base URL of the product catalog service.
type CatalogURL string

// ProvideInventoryStore provides the inventory store, wrapped with the
// tracing decorator.
func ProvideInventoryStore(db *gorm.DB) domain.InventoryStore {
	return repository.NewTracingInventoryStore(repository.NewGormInventoryStore(db))
}

// ProvideCatalogGateway provides the catalog gateway backed by the
// product service REST API.
func ProvideCatalogGateway(catalogURL CatalogURL) domain.CatalogGateway {
	return client.NewCatalogClient(string(catalogURL))
}

// Wire sets
var StoreSet = wire.NewSet(
	ProvideInventoryStore,
)

var GatewaySet = wire.NewSet(
	ProvideCatalogGateway,
)
