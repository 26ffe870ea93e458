package main

// @title Inventory Service API
// @version 1.0
// @description Inventory accounting service with a stock movement ledger and full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/alejandrovrod/ecommerce-inventory
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/alejandrovrod/ecommerce-inventory/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Inventory
// @tag.description Stock level and movement ledger endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
