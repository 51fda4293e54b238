package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Only ID, Name and Price are consumed
// by the order workflow; the remaining attributes are catalog-only.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description" db:"description"`
	SKU           *string         `json:"sku" db:"sku"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}
