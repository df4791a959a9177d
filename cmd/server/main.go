package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/stockroomlabs/stockroom/internal/category"
	"github.com/stockroomlabs/stockroom/internal/importer"
	importhttp "github.com/stockroomlabs/stockroom/internal/importer/delivery/http"
	"github.com/stockroomlabs/stockroom/internal/ledger"
	ledgerdomain "github.com/stockroomlabs/stockroom/internal/ledger/domain"
	"github.com/stockroomlabs/stockroom/internal/middleware"
	"github.com/stockroomlabs/stockroom/internal/product"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/internal/report"
	reporthttp "github.com/stockroomlabs/stockroom/internal/report/delivery/http"
	"github.com/stockroomlabs/stockroom/internal/supplier"
	"github.com/stockroomlabs/stockroom/internal/user"
	userdomain "github.com/stockroomlabs/stockroom/internal/user/domain"
	"github.com/stockroomlabs/stockroom/kafka"
	"github.com/stockroomlabs/stockroom/pkg/database"
	"github.com/stockroomlabs/stockroom/pkg/logger"
	"github.com/stockroomlabs/stockroom/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "stockroom")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting stockroom service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracing, continuing without it")
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
		DBName:   getEnv("DB_NAME", "stockroomdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

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
	if err := db.AutoMigrate(
		&productdomain.Product{},
		&ledgerdomain.StockMovement{},
		&userdomain.User{},
		&category.Category{},
		&supplier.Supplier{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis for response caching and rate limiting
	redisClient := connectRedis()

	// Optional Kafka for domain events
	publisher := connectKafka()
	if publisher != nil {
		defer publisher.Close()
	}

	// Build handlers
	productRepo := product.ProvideProductRepository(db)

	productHandler, err := product.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}

	movementHandler, err := ledger.InitializeHTTPHandler(db, productRepo, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize movement handler")
	}

	userHandler, err := user.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}

	importHandler := importhttp.NewImportHandler(importer.NewPipeline(productRepo), publisher)
	reportHandler := reporthttp.NewReportHandler(report.NewBuilder(productRepo))
	categoryHandler := category.NewHandler(category.NewGormRepository(db))
	supplierHandler := supplier.NewHandler(supplier.NewGormRepository(db))

	// Setup router
	router := mux.NewRouter()

	mwConfig := middleware.DefaultConfig()
	middleware.Register(router, mwConfig)

	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, 100, time.Minute)
		router.Use(limiter.Middleware)
	}

	productHandler.RegisterRoutes(router)
	movementHandler.RegisterRoutes(router)
	importHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	supplierHandler.RegisterRoutes(router)

	// Report routes get a response cache on top
	cache := middleware.CacheMiddleware(redisClient, middleware.DefaultCacheConfig())
	router.Handle("/api/reports/inventory", cache(http.HandlerFunc(reportHandler.GetReport))).Methods("GET")
	router.Handle("/api/reports/inventory.csv", cache(http.HandlerFunc(reportHandler.ExportReportCSV))).Methods("GET")

	productHandler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	httpPort := getEnv("HTTP_PORT", "8080")
	logger.Logger.Info().
		Str("port", httpPort).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: middleware.SetupCORS(mwConfig)(router),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func connectRedis() *redis.Client {
	addr := getEnv("REDIS_ADDR", "")
	if addr == "" {
		logger.Logger.Info().Msg("REDIS_ADDR not set, caching and rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getEnv("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", addr).Msg("Redis unavailable, continuing without it")
		return nil
	}

	logger.Logger.Info().Str("addr", addr).Msg("Connected to Redis")
	return client
}

func connectKafka() *kafka.Publisher {
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers == "" {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, event publishing disabled")
		return nil
	}

	publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
	if err != nil {
		logger.Logger.Warn().Err(err).Str("brokers", brokers).Msg("Kafka unavailable, continuing without it")
		return nil
	}

	logger.Logger.Info().Str("brokers", brokers).Msg("Connected to Kafka")
	return publisher
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
