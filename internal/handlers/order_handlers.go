package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"minishop/internal/clients"
	"minishop/internal/common"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

type orderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	ShippingAddress string             `json:"shippingAddress"`
	Items           []orderItemRequest `json:"items"`
}

// CreateOrder handles POST /orders. Validation failures are rejected before
// the catalog is contacted.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.CustomerName, "customerName"); err != nil {
		return common.SendValidationError(c, "customerName", err.Error())
	}
	if err := common.ValidateEmail(req.CustomerEmail, "customerEmail"); err != nil {
		return common.SendValidationError(c, "customerEmail", err.Error())
	}
	if err := common.ValidateRequiredString(req.ShippingAddress, "shippingAddress"); err != nil {
		return common.SendValidationError(c, "shippingAddress", err.Error())
	}
	if len(req.Items) == 0 {
		return common.SendValidationError(c, "items", "order must have at least one item")
	}
	for i, item := range req.Items {
		if err := common.ValidatePositiveInt64(item.ProductID, "productId"); err != nil {
			return common.SendValidationError(c, fmt.Sprintf("items[%d].productId", i), err.Error())
		}
		if err := common.ValidatePositiveInt(item.Quantity, "quantity"); err != nil {
			return common.SendValidationError(c, fmt.Sprintf("items[%d].quantity", i), err.Error())
		}
	}

	input := &services.CreateOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           make([]services.OrderItemRequest, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, clients.ErrProductUnavailable) {
			return common.SendProductUnavailableError(c, "Product lookup failed; order not created")
		}
		return common.SendServerError(c, "Failed to create order")
	}
	return c.JSON(http.StatusCreated, newOrderView(order))
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "order")
		}
		return common.SendServerError(c, "Failed to retrieve order")
	}
	return c.JSON(http.StatusOK, newOrderView(order))
}

// ListOrders handles GET /orders?customerEmail=...
// The email match is exact and case-sensitive.
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	email := c.QueryParam("customerEmail")
	if email == "" {
		return common.SendValidationError(c, "customerEmail", "customerEmail query parameter is required")
	}

	orders, err := h.orderService.ListOrdersByCustomerEmail(c.Request().Context(), email)
	if err != nil {
		return common.SendServerError(c, "Failed to list orders")
	}
	return c.JSON(http.StatusOK, newOrderViews(orders))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /orders/:id/status. Any transition between
// declared states is accepted; unknown status strings are rejected.
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	status, err := models.ToOrderStatus(req.Status)
	if err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request().Context(), id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "order")
		}
		return common.SendServerError(c, "Failed to update order status")
	}
	return c.JSON(http.StatusOK, newOrderView(order))
}
