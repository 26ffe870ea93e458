package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Inventory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateStock godoc
// @Summary Create stock record
// @Description Create the stock record for a product with its initial quantity (Admin only)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,initial_quantity=int,location=string} true "Stock data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/inventory [post]
func (h *InventoryHandler) CreateStockDoc() {}

// ListStock godoc
// @Summary List all stock records
// @Description Get a list of all stock records with pagination
// @Tags Inventory
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListStockDoc() {}

// GetAvailability godoc
// @Summary Get product availability
// @Description Get on-hand, reserved and available quantities for a product
// @Tags Inventory
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object{product_id=int,quantity_on_hand=int,quantity_reserved=int,quantity_available=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/availability [get]
func (h *InventoryHandler) GetAvailabilityDoc() {}

// CheckLowStock godoc
// @Summary Check low stock
// @Description Check whether a product's available quantity is at or below a threshold
// @Tags Inventory
// @Produce json
// @Param product_id path int true "Product ID"
// @Param threshold query int false "Low stock threshold (default: 10)"
// @Success 200 {object} object{success=bool,data=object{product_id=int,low_stock=bool}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/low-stock [get]
func (h *InventoryHandler) CheckLowStockDoc() {}

// ListLowStock godoc
// @Summary List low stock products
// @Description List products whose available quantity is at or below a threshold
// @Tags Inventory
// @Produce json
// @Param threshold query int false "Low stock threshold (default: 10)"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStockDoc() {}

// ListOutOfStock godoc
// @Summary List out of stock products
// @Description List products with zero or negative available quantity
// @Tags Inventory
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/out-of-stock [get]
func (h *InventoryHandler) ListOutOfStockDoc() {}

// MovementHistory godoc
// @Summary List stock movements
// @Description List ledger entries, newest first, filtered by product, type, actor, correlation and time range
// @Tags Inventory
// @Produce json
// @Param product_id query int false "Product ID"
// @Param movement_type query string false "Movement type (adjustment, reservation, release, sale, return)"
// @Param actor_id query string false "Actor ID"
// @Param correlation_id query string false "Correlation ID"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param page query int false "Page (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} object{success=bool,data=object{movements=array,total=int,page=int,page_size=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inventory/movements [get]
func (h *InventoryHandler) MovementHistoryDoc() {}

// AdjustQuantity godoc
// @Summary Adjust on-hand quantity
// @Description Apply a signed on-hand correction with a mandatory reason (Admin only)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{delta=int,reason=string,notes=string} true "Adjustment data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/adjust [post]
func (h *InventoryHandler) AdjustQuantityDoc() {}

// ReserveStock godoc
// @Summary Reserve stock
// @Description Place a hold on available stock for a pending order (Authenticated users)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int,reason=string,correlation_id=string} true "Reservation data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string} "Insufficient available stock"
// @Router /api/inventory/{product_id}/reserve [post]
func (h *InventoryHandler) ReserveStockDoc() {}

// ReleaseStock godoc
// @Summary Release reservation
// @Description Return held quantity to the available pool (Authenticated users)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int,reason=string,correlation_id=string} true "Release data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string} "Release exceeds reserved quantity"
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/release [post]
func (h *InventoryHandler) ReleaseStockDoc() {}

// RecordSale godoc
// @Summary Record a sale
// @Description Consume stock for a completed sale, drawing down a matching reservation when one exists (Authenticated users)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int,correlation_id=string} true "Sale data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string} "Insufficient stock"
// @Router /api/inventory/{product_id}/sale [post]
func (h *InventoryHandler) RecordSaleDoc() {}

// RecordReturn godoc
// @Summary Record a return
// @Description Add returned units back to on-hand stock (Admin only)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int,reason=string,correlation_id=string} true "Return data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/return [post]
func (h *InventoryHandler) RecordReturnDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
