package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"minishop/internal/common"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductHandlers handles HTTP requests for the catalog
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	SKU           *string         `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

func (h *ProductHandlers) validateProductRequest(c echo.Context, req *productRequest) error {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Price.IsNegative() {
		return common.SendValidationError(c, "price", "price cannot be negative")
	}
	if req.StockQuantity < 0 {
		return common.SendValidationError(c, "stockQuantity", "stockQuantity cannot be negative")
	}
	return nil
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, newProductViews(products))
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "product")
		}
		return common.SendServerError(c, "Failed to retrieve product")
	}
	return c.JSON(http.StatusOK, newProductView(product))
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := h.validateProductRequest(c, &req); err != nil {
		return err
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return common.SendServerError(c, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, newProductView(product))
}

// UpdateProduct handles PUT /products/:id. The id is immutable; all mutable
// fields are replaced.
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := h.validateProductRequest(c, &req); err != nil {
		return err
	}

	product := &models.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := h.productService.Update(c.Request().Context(), product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "product")
		}
		return common.SendServerError(c, "Failed to update product")
	}

	updated, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve updated product")
	}
	return c.JSON(http.StatusOK, newProductView(updated))
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "product")
		}
		return common.SendServerError(c, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
