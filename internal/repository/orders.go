package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/google/uuid"
)

const orderColumns = `id, customer_name, customer_email, COALESCE(customer_phone, ''), COALESCE(company_name, ''),
	shipping_address, total_amount, COALESCE(notes, ''), status, payment_status, created_at, updated_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CompanyName,
		&o.ShippingAddress,
		&o.TotalAmount,
		&o.Notes,
		&o.Status,
		&o.PaymentStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// CreateOrder inserts an order with pending status and payment status and
// returns the stored row.
func (r *Repository) CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	now := r.now()
	order := &domain.Order{
		ID:              uuid.NewString(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CompanyName:     in.CompanyName,
		ShippingAddress: in.ShippingAddress,
		TotalAmount:     in.TotalAmount,
		Notes:           in.Notes,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	query := `INSERT INTO orders (id, customer_name, customer_email, customer_phone, company_name,
	          shipping_address, total_amount, notes, status, payment_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		nullString(order.CustomerPhone),
		nullString(order.CompanyName),
		order.ShippingAddress,
		order.TotalAmount,
		nullString(order.Notes),
		order.Status,
		order.PaymentStatus,
		order.CreatedAt,
		order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", mapWriteError(err))
	}
	return order, nil
}

// CreateOrderItems writes all items with a single multi-row insert inside one
// transaction. Items without an id get one assigned.
func (r *Repository) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(items)*6)
	)
	sb.WriteString(`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price) VALUES `)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args,
			items[i].ID,
			items[i].OrderID,
			items[i].ProductID,
			items[i].Quantity,
			items[i].UnitPrice,
			items[i].TotalPrice)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert order items: %w", mapWriteError(err))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order items: %w", err)
	}
	return nil
}

// DeleteOrder removes an order together with any items it has.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrOrderNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := expectOneRow(res, ErrOrderNotFound); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete order: %w", err)
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return o, nil
}

// ListOrders returns all orders newest first.
func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *Repository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrOrderNotFound
	}
	query := `SELECT id, order_id, product_id, quantity, unit_price, total_price
	          FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.updateOrderColumn(ctx, id, "status", string(status))
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	return r.updateOrderColumn(ctx, id, "payment_status", string(status))
}

func (r *Repository) updateOrderColumn(ctx context.Context, id, column, value string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrOrderNotFound
	}
	query := fmt.Sprintf(`UPDATE orders SET %s = $1, updated_at = $2 WHERE id = $3`, column)
	res, err := r.db.ExecContext(ctx, query, value, r.now(), id)
	if err != nil {
		return fmt.Errorf("update order %s: %w", column, err)
	}
	return expectOneRow(res, ErrOrderNotFound)
}
