package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root owning its line items. Items live and die with
// the order; they are never shared.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	CustomerEmail   string          `json:"customerEmail" db:"customer_email"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	Status          OrderStatus     `json:"status" db:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	OrderDate       time.Time       `json:"orderDate" db:"order_date"`
	Items           []*OrderItem    `json:"items"`
}

// NewOrder is the single construction path for new orders: it stamps the
// order date and the PENDING status before anything is persisted.
func NewOrder(customerName, customerEmail, shippingAddress string) *Order {
	return &Order{
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		ShippingAddress: shippingAddress,
		Status:          OrderStatusPending,
		TotalAmount:     decimal.Zero,
		OrderDate:       time.Now(),
	}
}

// AddItem appends a line item, preserving insertion order, and recomputes the
// total.
func (o *Order) AddItem(item *OrderItem) {
	o.Items = append(o.Items, item)
	o.CalculateTotal()
}

// CalculateTotal sets TotalAmount to the exact sum of item subtotals.
func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total
}
