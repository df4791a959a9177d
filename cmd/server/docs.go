package main

// @title Stockroom API
// @version 1.0
// @description Inventory management service: product catalog, stock ledger, bulk import and reporting with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/stockroomlabs/stockroom
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/stockroomlabs/stockroom/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Movements
// @tag.description Stock ledger endpoints

// @tag.name Imports
// @tag.description Bulk import endpoints

// @tag.name Reports
// @tag.description Inventory report endpoints

// @tag.name Auth
// @tag.description Login and registration endpoints

// @tag.name Health
// @tag.description Health check endpoints
