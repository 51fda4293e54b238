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

	"minishop/internal/clients"
	"minishop/internal/handlers"
	"minishop/internal/repositories"
	"minishop/internal/services"
	"minishop/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id               BIGSERIAL PRIMARY KEY,
	customer_name    TEXT NOT NULL,
	customer_email   TEXT NOT NULL,
	shipping_address TEXT NOT NULL,
	status           VARCHAR(20) NOT NULL,
	total_amount     NUMERIC(12, 2) NOT NULL,
	order_date       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	id           BIGSERIAL PRIMARY KEY,
	order_id     BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id   BIGINT NOT NULL,
	product_name TEXT NOT NULL,
	quantity     INT NOT NULL,
	price        NUMERIC(12, 2) NOT NULL,
	subtotal     NUMERIC(12, 2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders (customer_email);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);
`

func main() {
	// Money fields marshal as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	productServiceURL := os.Getenv("PRODUCT_SERVICE_URL")
	if productServiceURL == "" {
		log.Fatal("PRODUCT_SERVICE_URL environment variable is required")
	}

	catalogTimeout := 5 * time.Second
	if timeoutStr := os.Getenv("CATALOG_TIMEOUT_SECONDS"); timeoutStr != "" {
		if seconds, err := strconv.Atoi(timeoutStr); err == nil && seconds > 0 {
			catalogTimeout = time.Duration(seconds) * time.Second
		}
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.InitSchema(context.Background(), pool, schema); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	productClient := clients.NewProductClient(productServiceURL, catalogTimeout)

	orderRepo := repositories.NewOrderRepo(pool)
	orderSvc := services.NewOrderService(orderRepo, productClient)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.GET("/health", handlers.HealthCheck("order-service"))

	e.POST("/orders", orderHandlers.CreateOrder)
	e.GET("/orders", orderHandlers.ListOrders)
	e.GET("/orders/:id", orderHandlers.GetOrder)
	e.PATCH("/orders/:id/status", orderHandlers.UpdateOrderStatus)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Order service starting on port %d (catalog: %s)", port, productServiceURL)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
