package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Widget","price":10.00,"stockQuantity":50}`)
	}))
	defer server.Close()

	client := NewProductClient(server.URL, 5*time.Second)

	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"NOT_FOUND","message":"product not found"}}`)
	}))
	defer server.Close()

	client := NewProductClient(server.URL, 5*time.Second)

	_, err := client.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestGetProduct_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewProductClient(server.URL, 5*time.Second)

	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestGetProduct_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":`)
	}))
	defer server.Close()

	client := NewProductClient(server.URL, 5*time.Second)

	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestGetProduct_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewProductClient(server.URL, 5*time.Second)

	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestGetProduct_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"id":1,"name":"Widget","price":10.00}`)
	}))
	defer server.Close()

	client := NewProductClient(server.URL, 20*time.Millisecond)

	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}
