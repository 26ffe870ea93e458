package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/usecase/command"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/usecase/query"
	"github.com/alejandrovrod/ecommerce-inventory/kafka"
	"github.com/alejandrovrod/ecommerce-inventory/pkg/logger"
)

// Prometheus metrics. Package level so handler construction stays
// idempotent under tests.
var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	movementCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_movements_total",
			Help: "Total number of committed stock movements by type",
		},
		[]string{"movement_type"},
	)

	insufficientStockCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_insufficient_stock_total",
			Help: "Total number of operations rejected for insufficient stock",
		},
	)
)

// MovementPublisher publishes committed stock movements to the event
// bus. A nil publisher disables publication.
type MovementPublisher interface {
	PublishStockMovement(ctx context.Context, event kafka.StockMovementEvent) error
}

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	// Command handlers
	createHandler  *command.CreateStockHandler
	adjustHandler  *command.AdjustQuantityHandler
	reserveHandler *command.ReserveStockHandler
	releaseHandler *command.ReleaseStockHandler
	saleHandler    *command.RecordSaleHandler
	returnHandler  *command.RecordReturnHandler

	// Query handlers
	availabilityHandler *query.GetAvailabilityHandler
	checkLowHandler     *query.CheckLowStockHandler
	listLowHandler      *query.ListLowStockHandler
	listOutHandler      *query.ListOutOfStockHandler
	listHandler         *query.ListStockHandler
	historyHandler      *query.MovementHistoryHandler

	publisher MovementPublisher
	cache     *AvailabilityCache
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(store domain.InventoryStore, catalog domain.CatalogGateway, publisher MovementPublisher, cache *AvailabilityCache) *InventoryHandler {
	return &InventoryHandler{
		createHandler:  command.NewCreateStockHandler(store, catalog),
		adjustHandler:  command.NewAdjustQuantityHandler(store),
		reserveHandler: command.NewReserveStockHandler(store),
		releaseHandler: command.NewReleaseStockHandler(store),
		saleHandler:    command.NewRecordSaleHandler(store),
		returnHandler:  command.NewRecordReturnHandler(store),

		availabilityHandler: query.NewGetAvailabilityHandler(store),
		checkLowHandler:     query.NewCheckLowStockHandler(store),
		listLowHandler:      query.NewListLowStockHandler(store),
		listOutHandler:      query.NewListOutOfStockHandler(store),
		listHandler:         query.NewListStockHandler(store),
		historyHandler:      query.NewMovementHistoryHandler(store),

		publisher: publisher,
		cache:     cache,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// statusForError maps domain errors onto HTTP statuses. Conflict-class
// statuses mark outcomes the caller can recover from by retrying or
// reducing quantity; 503 marks transient server-side trouble.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrencyConflict),
		errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func (h *InventoryHandler) respondDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInsufficientStock) {
		insufficientStockCounter.Inc()
	}
	respondJSON(w, statusForError(err), Response{
		Success: false,
		Error:   err.Error(),
	})
}

// actorFromContext pulls the authenticated user out of the request
// context set by AuthMiddleware.
func actorFromContext(ctx context.Context) domain.Actor {
	actor := domain.Actor{}
	if id, ok := ctx.Value(UserIDKey).(uint); ok {
		actor.ID = strconv.FormatUint(uint64(id), 10)
	}
	if name, ok := ctx.Value(UsernameKey).(string); ok {
		actor.Name = name
	}
	return actor
}

func productIDFromPath(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["product_id"], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// afterMutation runs the post-commit side effects shared by every
// write: movement metrics, cache invalidation and event publication.
// All of them are best effort; the mutation is already committed.
func (h *InventoryHandler) afterMutation(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) {
	movementCounter.WithLabelValues(movement.Type).Inc()
	h.cache.Invalidate(ctx, record.ProductID)

	if h.publisher == nil {
		return
	}
	event := kafka.StockMovementEvent{
		ProductID:     record.ProductID,
		MovementType:  movement.Type,
		QuantityDelta: movement.QuantityDelta,
		OnHand:        record.OnHand,
		Reserved:      record.Reserved,
		Available:     record.Available(),
		Reason:        movement.Reason,
		CorrelationID: movement.CorrelationID,
	}
	if err := h.publisher.PublishStockMovement(ctx, event); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("product_id", record.ProductID).
			Str("movement_type", movement.Type).
			Msg("Failed to publish stock movement event")
	}
}

// movementResponse is the payload returned by every mutation endpoint.
type movementResponse struct {
	Stock    *domain.StockRecord   `json:"stock"`
	Movement *domain.StockMovement `json:"movement"`
}

// CreateStock handles POST /api/inventory
func (h *InventoryHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID       uint   `json:"product_id"`
		InitialQuantity int    `json:"initial_quantity"`
		Location        string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateStockCommand{
		ProductID:       req.ProductID,
		InitialQuantity: req.InitialQuantity,
		Location:        req.Location,
		Actor:           actorFromContext(r.Context()),
	}

	record, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("product_id", req.ProductID).Msg("Failed to create stock")
		h.respondDomainError(w, err)
		return
	}

	movementCounter.WithLabelValues(domain.MovementAdjustment).Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock created successfully",
		Data:    record,
	})
}

// AdjustQuantity handles POST /api/inventory/{product_id}/adjust
func (h *InventoryHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Delta  int    `json:"delta"`
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.AdjustQuantityCommand{
		ProductID: productID,
		Delta:     req.Delta,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Actor:     actorFromContext(r.Context()),
	}

	record, movement, err := h.adjustHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("product_id", productID).Msg("Failed to adjust quantity")
		h.respondDomainError(w, err)
		return
	}

	h.afterMutation(r.Context(), record, movement)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity adjusted successfully",
		Data:    movementResponse{Stock: record, Movement: movement},
	})
}

// ReserveStock handles POST /api/inventory/{product_id}/reserve
func (h *InventoryHandler) ReserveStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity      int    `json:"quantity"`
		Reason        string `json:"reason"`
		CorrelationID string `json:"correlation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.ReserveStockCommand{
		ProductID:     productID,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		CorrelationID: req.CorrelationID,
	}

	record, movement, err := h.reserveHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("product_id", productID).Int("quantity", req.Quantity).Msg("Failed to reserve stock")
		h.respondDomainError(w, err)
		return
	}

	h.afterMutation(r.Context(), record, movement)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock reserved successfully",
		Data:    movementResponse{Stock: record, Movement: movement},
	})
}

// ReleaseStock handles POST /api/inventory/{product_id}/release
func (h *InventoryHandler) ReleaseStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity      int    `json:"quantity"`
		Reason        string `json:"reason"`
		CorrelationID string `json:"correlation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.ReleaseStockCommand{
		ProductID:     productID,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		CorrelationID: req.CorrelationID,
	}

	record, movement, err := h.releaseHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("product_id", productID).Int("quantity", req.Quantity).Msg("Failed to release stock")
		h.respondDomainError(w, err)
		return
	}

	h.afterMutation(r.Context(), record, movement)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Reservation released successfully",
		Data:    movementResponse{Stock: record, Movement: movement},
	})
}

// RecordSale handles POST /api/inventory/{product_id}/sale
func (h *InventoryHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity      int    `json:"quantity"`
		CorrelationID string `json:"correlation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.RecordSaleCommand{
		ProductID:     productID,
		Quantity:      req.Quantity,
		CorrelationID: req.CorrelationID,
		Actor:         actorFromContext(r.Context()),
	}

	record, movement, err := h.saleHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("product_id", productID).Int("quantity", req.Quantity).Msg("Failed to record sale")
		h.respondDomainError(w, err)
		return
	}

	h.afterMutation(r.Context(), record, movement)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Sale recorded successfully",
		Data:    movementResponse{Stock: record, Movement: movement},
	})
}

// RecordReturn handles POST /api/inventory/{product_id}/return
func (h *InventoryHandler) RecordReturn(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity      int    `json:"quantity"`
		Reason        string `json:"reason"`
		CorrelationID string `json:"correlation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.RecordReturnCommand{
		ProductID:     productID,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		CorrelationID: req.CorrelationID,
	}

	record, movement, err := h.returnHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("product_id", productID).Int("quantity", req.Quantity).Msg("Failed to record return")
		h.respondDomainError(w, err)
		return
	}

	h.afterMutation(r.Context(), record, movement)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Return recorded successfully",
		Data:    movementResponse{Stock: record, Movement: movement},
	})
}

// GetAvailability handles GET /api/inventory/{product_id}/availability
func (h *InventoryHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	if payload, hit := h.cache.Get(r.Context(), productID); hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	availability, err := h.availabilityHandler.Handle(r.Context(), query.GetAvailabilityQuery{ProductID: productID})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	body, err := json.Marshal(Response{Success: true, Data: availability})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to encode response"})
		return
	}

	h.cache.Set(r.Context(), productID, body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// CheckLowStock handles GET /api/inventory/{product_id}/low-stock
func (h *InventoryHandler) CheckLowStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDFromPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
	low, err := h.checkLowHandler.Handle(r.Context(), query.CheckLowStockQuery{
		ProductID: productID,
		Threshold: threshold,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"product_id": productID,
			"low_stock":  low,
		},
	})
}

// ListStock handles GET /api/inventory
func (h *InventoryHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listHandler.Handle(r.Context(), query.ListStockQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list stock")
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// ListLowStock handles GET /api/inventory/low-stock
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listLowHandler.Handle(r.Context(), query.ListLowStockQuery{
		Threshold: threshold,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list low stock")
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// ListOutOfStock handles GET /api/inventory/out-of-stock
func (h *InventoryHandler) ListOutOfStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listOutHandler.Handle(r.Context(), query.ListOutOfStockQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list out of stock")
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// MovementHistory handles GET /api/inventory/movements
func (h *InventoryHandler) MovementHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.MovementFilter{
		Type:          q.Get("movement_type"),
		ActorID:       q.Get("actor_id"),
		CorrelationID: q.Get("correlation_id"),
	}
	if raw := q.Get("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
			return
		}
		filter.ProductID = uint(id)
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid 'from' timestamp"})
			return
		}
		filter.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid 'to' timestamp"})
			return
		}
		filter.To = t
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	result, err := h.historyHandler.Handle(r.Context(), query.MovementHistoryQuery{Filter: filter})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list movement history")
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	// Collection routes precede the {product_id} routes so literal path
	// segments are not captured as product IDs.
	router.HandleFunc("/api/inventory", h.metricsMiddleware("/api/inventory", h.ListStock)).Methods("GET")
	router.HandleFunc("/api/inventory", h.metricsMiddleware("/api/inventory", AdminMiddleware(h.CreateStock))).Methods("POST")
	router.HandleFunc("/api/inventory/low-stock", h.metricsMiddleware("/api/inventory/low-stock", h.ListLowStock)).Methods("GET")
	router.HandleFunc("/api/inventory/out-of-stock", h.metricsMiddleware("/api/inventory/out-of-stock", h.ListOutOfStock)).Methods("GET")
	router.HandleFunc("/api/inventory/movements", h.metricsMiddleware("/api/inventory/movements", h.MovementHistory)).Methods("GET")

	router.HandleFunc("/api/inventory/{product_id}/availability", h.metricsMiddleware("/api/inventory/availability", h.GetAvailability)).Methods("GET")
	router.HandleFunc("/api/inventory/{product_id}/low-stock", h.metricsMiddleware("/api/inventory/check-low-stock", h.CheckLowStock)).Methods("GET")
	router.HandleFunc("/api/inventory/{product_id}/adjust", h.metricsMiddleware("/api/inventory/adjust", AdminMiddleware(h.AdjustQuantity))).Methods("POST")
	router.HandleFunc("/api/inventory/{product_id}/reserve", h.metricsMiddleware("/api/inventory/reserve", AuthMiddleware(h.ReserveStock))).Methods("POST")
	router.HandleFunc("/api/inventory/{product_id}/release", h.metricsMiddleware("/api/inventory/release", AuthMiddleware(h.ReleaseStock))).Methods("POST")
	router.HandleFunc("/api/inventory/{product_id}/sale", h.metricsMiddleware("/api/inventory/sale", AuthMiddleware(h.RecordSale))).Methods("POST")
	router.HandleFunc("/api/inventory/{product_id}/return", h.metricsMiddleware("/api/inventory/return", AdminMiddleware(h.RecordReturn))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
