package handlers

import (
	"time"

	"minishop/internal/models"

	"github.com/shopspring/decimal"
)

// Transport views are built field-by-field from the stored records; no
// catalog lookup happens on read paths, the order's own snapshot is
// authoritative.

type ProductView struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	SKU           *string         `json:"sku,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func newProductView(p *models.Product) *ProductView {
	return &ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func newProductViews(products []*models.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

type OrderItemView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderView struct {
	ID              int64              `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	ShippingAddress string             `json:"shippingAddress"`
	Status          models.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	OrderDate       time.Time          `json:"orderDate"`
	Items           []*OrderItemView   `json:"items"`
}

func newOrderView(o *models.Order) *OrderView {
	items := make([]*OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, &OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}

	return &OrderView{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		OrderDate:       o.OrderDate,
		Items:           items,
	}
}

func newOrderViews(orders []*models.Order) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}
