package models

import "github.com/shopspring/decimal"

// OrderItem is a line of an Order. ProductName and Price are snapshots taken
// from the catalog at order time; later catalog changes never touch them.
type OrderItem struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"orderId" db:"order_id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// NewOrderItem snapshots a catalog product into a line item and computes its
// subtotal with exact decimal arithmetic.
func NewOrderItem(productID int64, productName string, quantity int, price decimal.Decimal) *OrderItem {
	return &OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Subtotal:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
