package services

import (
	"context"
	"errors"
	"log"
	"time"

	"minishop/internal/caching"
	"minishop/internal/models"
	"minishop/internal/repositories"
)

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}
	if product.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if product.StockQuantity < 0 {
		return errors.New("stock quantity cannot be negative")
	}

	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	// Try the cache first; cache errors fall through to the database
	if cachedProduct, err := s.cacheService.GetProduct(ctx, id); cachedProduct != nil {
		return cachedProduct, nil
	} else if err != nil {
		log.Printf("Cache error for product %d: %v", id, err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, 15*time.Minute); cacheErr != nil {
		log.Printf("Failed to cache product %d: %v", id, cacheErr)
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}
	if product.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, product.ID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %d: %v", product.ID, cacheErr)
	}

	return nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %d: %v", id, cacheErr)
	}

	return nil
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}
