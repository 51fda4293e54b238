package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"minishop/internal/caching"
	"minishop/internal/handlers"
	"minishop/internal/jobs"
	"minishop/internal/repositories"
	"minishop/internal/services"
	"minishop/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT,
	sku            TEXT,
	price          NUMERIC(12, 2) NOT NULL,
	stock_quantity INT NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func main() {
	// Money fields marshal as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.InitSchema(context.Background(), pool, schema); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	productRepo := repositories.NewProductRepo(pool)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)

	warmer, err := jobs.NewCacheWarmer(productRepo, cacheSvc, 10*time.Minute)
	if err != nil {
		log.Fatalf("Failed to create cache warmer: %v", err)
	}
	warmer.Start()
	defer func() {
		if err := warmer.Stop(); err != nil {
			log.Printf("Failed to stop cache warmer: %v", err)
		}
	}()

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.GET("/health", handlers.HealthCheck("product-service"))

	e.GET("/products", productHandlers.ListProducts)
	e.POST("/products", productHandlers.CreateProduct)
	e.GET("/products/:id", productHandlers.GetProduct)
	e.PUT("/products/:id", productHandlers.UpdateProduct)
	e.DELETE("/products/:id", productHandlers.DeleteProduct)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8081"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Product service starting on port %d", port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
