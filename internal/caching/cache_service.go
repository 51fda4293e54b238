package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"minishop/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as plain host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func productKey(productID int64) string {
	return fmt.Sprintf("product:%d", productID)
}

// GetProduct returns (nil, nil) on a cache miss.
func (s *redisCacheService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	data, err := s.client.Get(ctx, productKey(productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get product: %w", err)
	}

	product := &models.Product{}
	if err := json.Unmarshal([]byte(data), product); err != nil {
		return nil, fmt.Errorf("cache decode product: %w", err)
	}
	return product, nil
}

func (s *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("cache encode product: %w", err)
	}
	if err := s.client.Set(ctx, productKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set product: %w", err)
	}
	return nil
}

func (s *redisCacheService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.client.Del(ctx, productKey(productID)).Err(); err != nil {
		return fmt.Errorf("cache delete product: %w", err)
	}
	return nil
}
