package services

import (
	"context"
	"fmt"

	"minishop/internal/clients"
	"minishop/internal/models"
	"minishop/internal/repositories"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID int64
	Quantity  int
}

// CreateOrderRequest carries the validated input of the order creation
// workflow. Handlers are responsible for syntactic validation before the
// workflow runs, so no catalog call happens for invalid input.
type CreateOrderRequest struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderItemRequest
}

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	productClient clients.ProductClient
}

func NewOrderService(orderRepo repositories.OrderRepository, productClient clients.ProductClient) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productClient: productClient,
	}
}

// CreateOrder fans out to the catalog for every requested item, snapshots the
// product name and price into line items, and persists the aggregate in one
// transaction. A failed catalog call aborts the whole order.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	order := models.NewOrder(req.CustomerName, req.CustomerEmail, req.ShippingAddress)

	for _, itemReq := range req.Items {
		product, err := s.productClient.GetProduct(ctx, itemReq.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", itemReq.ProductID, err)
		}

		order.AddItem(models.NewOrderItem(product.ID, product.Name, itemReq.Quantity, product.Price))
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListOrdersByCustomerEmail matches the stored customer_email exactly,
// case-sensitive.
func (s *orderService) ListOrdersByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error) {
	return s.orderRepo.ListByCustomerEmail(ctx, email)
}

// UpdateOrderStatus sets the new status without transition restrictions; any
// declared status may replace any other.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}
