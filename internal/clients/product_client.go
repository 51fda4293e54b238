package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductUnavailable covers every way the catalog lookup can fail:
// transport errors, timeouts, non-2xx responses and undecodable bodies.
var ErrProductUnavailable = errors.New("product unavailable")

// CatalogProduct is the slice of the Product Service response the order
// workflow contractually consumes.
type CatalogProduct struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductClient looks up one product by id against the Product Service.
type ProductClient interface {
	GetProduct(ctx context.Context, productID int64) (*CatalogProduct, error)
}

type productClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates a catalog client with a bounded request timeout.
// There are no retries; failures surface to the caller.
func NewProductClient(baseURL string, timeout time.Duration) ProductClient {
	return &productClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *productClient) GetProduct(ctx context.Context, productID int64) (*CatalogProduct, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrProductUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: call catalog: %v", ErrProductUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog returned status %d for product %d", ErrProductUnavailable, resp.StatusCode, productID)
	}

	product := &CatalogProduct{}
	if err := json.NewDecoder(resp.Body).Decode(product); err != nil {
		return nil, fmt.Errorf("%w: decode catalog response: %v", ErrProductUnavailable, err)
	}
	return product, nil
}
