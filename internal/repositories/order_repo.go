package repositories

import (
	"context"
	"errors"
	"fmt"

	"minishop/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// Create persists the order and its items in a single transaction. On any
// failure the transaction is rolled back and no partial aggregate is visible.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) (txErr error) {
	if len(order.Items) == 0 {
		return errors.New("no items in order")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if txErr != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (customer_name, customer_email, shipping_address, status, total_amount, order_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRow(ctx, orderQuery, order.CustomerName, order.CustomerEmail, order.ShippingAddress, order.Status, order.TotalAmount, order.OrderDate).
		Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, item := range order.Items {
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, itemQuery, item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Subtotal).
			Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, customer_name, customer_email, shipping_address, status, total_amount, order_date
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.ShippingAddress, &order.Status, &order.TotalAmount, &order.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	order.Items, err = r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListByCustomerEmail(ctx context.Context, email string) ([]*models.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, shipping_address, status, total_amount, order_date
		FROM orders
		WHERE customer_email = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.ShippingAddress, &order.Status, &order.TotalAmount, &order.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		order.Items, err = r.listItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

// listItems returns the items of one order in insertion order. Items are
// inserted sequentially inside the create transaction, so ordering by id
// reproduces the request order.
func (r *orderRepo) listItems(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
