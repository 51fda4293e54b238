package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"minishop/internal/models"
	"minishop/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[int64]*models.Product
	nextID   int64
	getCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*models.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.getCalls++
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
	}
	return product, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %d: %w", product.ID, repositories.ErrNotFound)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	for _, product := range r.products {
		products = append(products, product)
	}
	return products, nil
}

type fakeCache struct {
	products map[int64]*models.Product
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: make(map[int64]*models.Product)}
}

func (c *fakeCache) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return c.products[id], nil
}

func (c *fakeCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	c.products[product.ID] = product
	return nil
}

func (c *fakeCache) DeleteProduct(ctx context.Context, id int64) error {
	delete(c.products, id)
	return nil
}

func validProduct() *models.Product {
	return &models.Product{
		Name:          "Widget",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 50,
	}
}

func TestProductCreate(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewProductService(repo, newFakeCache())

	product := validProduct()
	err := service.Create(context.Background(), product)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductCreate_Validation(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewProductService(repo, newFakeCache())

	noName := validProduct()
	noName.Name = ""
	assert.Error(t, service.Create(context.Background(), noName))

	negativePrice := validProduct()
	negativePrice.Price = decimal.RequireFromString("-1.00")
	assert.Error(t, service.Create(context.Background(), negativePrice))

	negativeStock := validProduct()
	negativeStock.StockQuantity = -1
	assert.Error(t, service.Create(context.Background(), negativeStock))

	assert.Empty(t, repo.products)
}

func TestProductGetByID_CacheMissPopulatesCache(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	service := NewProductService(repo, cache)

	product := validProduct()
	require.NoError(t, service.Create(context.Background(), product))

	got, err := service.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, 1, repo.getCalls)
	assert.Contains(t, cache.products, product.ID)
}

func TestProductGetByID_CacheHitSkipsRepo(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	service := NewProductService(repo, cache)

	product := validProduct()
	require.NoError(t, service.Create(context.Background(), product))
	require.NoError(t, cache.SetProduct(context.Background(), product, time.Minute))

	_, err := service.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Zero(t, repo.getCalls)
}

func TestProductUpdate_InvalidatesCache(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	service := NewProductService(repo, cache)

	product := validProduct()
	require.NoError(t, service.Create(context.Background(), product))
	require.NoError(t, cache.SetProduct(context.Background(), product, time.Minute))

	product.Price = decimal.RequireFromString("12.00")
	require.NoError(t, service.Update(context.Background(), product))
	assert.NotContains(t, cache.products, product.ID)
}

func TestProductDelete(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	service := NewProductService(repo, cache)

	product := validProduct()
	require.NoError(t, service.Create(context.Background(), product))
	require.NoError(t, cache.SetProduct(context.Background(), product, time.Minute))

	require.NoError(t, service.Delete(context.Background(), product.ID))
	assert.NotContains(t, cache.products, product.ID)
	assert.ErrorIs(t, service.Delete(context.Background(), product.ID), repositories.ErrNotFound)
}
