package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/alejandrovrod/ecommerce-inventory/docs"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory"
	httpDelivery "github.com/alejandrovrod/ecommerce-inventory/internal/inventory/delivery/http"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/repository"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/usecase/command"
	"github.com/alejandrovrod/ecommerce-inventory/kafka"
	"github.com/alejandrovrod/ecommerce-inventory/pkg/database"
	"github.com/alejandrovrod/ecommerce-inventory/pkg/logger"
	"github.com/alejandrovrod/ecommerce-inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.NewGormInventoryStore(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis availability cache
	var cache *httpDelivery.AvailabilityCache
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		cacheTTL, _ := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
		cache = httpDelivery.NewAvailabilityCache(redisClient, cacheTTL)
		logger.Logger.Info().
			Str("redis_addr", redisAddr).
			Dur("ttl", cacheTTL).
			Msg("Availability cache enabled")
	}

	// Optional Kafka publisher and consumer
	var publisher httpDelivery.MovementPublisher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if brokersEnv := getEnv("KAFKA_BROKERS", ""); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")

		kafkaPublisher, err := kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		consumer, err := kafka.NewConsumer(
			brokers,
			getEnv("KAFKA_GROUP_ID", "inventory-service"),
			[]string{kafka.TopicProductPurchased},
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()

		// Purchases recorded by the payment service are applied as sales.
		saleHandler := command.NewRecordSaleHandler(inventory.ProvideInventoryStore(db))
		consumer.RegisterHandler(kafka.EventTypeProductPurchased, func(ctx context.Context, event kafka.ProductPurchasedEvent) error {
			_, _, err := saleHandler.Handle(ctx, command.RecordSaleCommand{
				ProductID:     event.ProductID,
				Quantity:      int(event.Quantity),
				CorrelationID: fmt.Sprintf("payment_%d", event.PaymentID),
			})
			return err
		})

		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Initialize handler with Wire DI
	catalogURL := inventory.CatalogURL(getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081"))
	handler, err := inventory.InitializeHTTPHandler(db, catalogURL, publisher, cache)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Str("catalog_url", string(catalogURL)).
		Msg("Inventory handler initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	startHTTPServer(handler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(handler *httpDelivery.InventoryHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
