package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, order_number, customer_id, shipping, total, status, payment_collected, created_at, updated_at`

// CreateOrder inserts the order and all its lines inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	shipping, err := json.Marshal(o.Shipping)
	if err != nil {
		return fmt.Errorf("marshal shipping: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_id, shipping, total, status, payment_collected)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.OrderNumber, o.CustomerID, shipping, o.Total, o.Status, o.PaymentCollected)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range o.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, o.ID, line.ProductID, line.Name, line.Price, line.Qty)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, uid))
	if err != nil {
		return nil, err
	}
	o.Lines, err = r.listLines(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context, f ListFilter) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []interface{}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	column := "created_at"
	if f.SortByUpdated {
		column = "updated_at"
	}
	direction := "DESC"
	if f.OldestFirst {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListOrdersByCustomer(ctx context.Context, customerID string, limit int) ([]*Order, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	args := []interface{}{uid}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceOrder rewrites the order row and swaps its lines in one transaction.
func (r *postgresRepo) ReplaceOrder(ctx context.Context, o *Order) error {
	shipping, err := json.Marshal(o.Shipping)
	if err != nil {
		return fmt.Errorf("marshal shipping: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET shipping = $1, total = $2, status = $3, payment_collected = $4, updated_at = $5
		WHERE id = $6`,
		shipping, o.Total, o.Status, o.PaymentCollected, time.Now(), o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	for _, line := range o.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, o.ID, line.ProductID, line.Name, line.Price, line.Qty)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, uid); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *postgresRepo) CountByStatus(ctx context.Context, status OrderStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *postgresRepo) GetStock(ctx context.Context, productID string) (int, string, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return 0, "", ErrNotFound
	}
	var quantity int
	var name string
	err = r.db.QueryRowContext(ctx, `
		SELECT p.name, COALESCE(s.quantity, 0)
		FROM products p
		LEFT JOIN stocks s ON s.product_id = p.id
		WHERE p.id = $1`, pid).Scan(&name, &quantity)
	if err == sql.ErrNoRows {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return quantity, name, nil
}

// DeductStock is a single guarded statement: the decrement only happens when
// enough quantity remains, so two racing checkouts can never drive the
// quantity negative. Status thresholds mirror inventory.StatusForQuantity.
func (r *postgresRepo) DeductStock(ctx context.Context, productID string, qty int) (int, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return 0, ErrNotFound
	}
	var remaining int
	err = r.db.QueryRowContext(ctx, `
		UPDATE stocks
		SET quantity = quantity - $2,
		    status = CASE
		        WHEN quantity - $2 <= 0 THEN 'Out of Stock'
		        WHEN quantity - $2 < 10 THEN 'Low Stock'
		        ELSE 'In Stock'
		    END,
		    updated_at = NOW()
		WHERE product_id = $1 AND quantity >= $2
		RETURNING quantity`, pid, qty).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, ErrInsufficientQuantity
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *postgresRepo) DeactivateProduct(ctx context.Context, productID string) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, pid)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var customerID sql.NullString
	var shipping []byte
	err := row.Scan(&o.ID, &o.OrderNumber, &customerID, &shipping, &o.Total,
		&o.Status, &o.PaymentCollected, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		uid, err := uuid.Parse(customerID.String)
		if err != nil {
			return nil, fmt.Errorf("bad customer id: %w", err)
		}
		o.CustomerID = &uid
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
			return nil, fmt.Errorf("unmarshal shipping: %w", err)
		}
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Lines, err = r.listLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listLines(ctx context.Context, orderID uuid.UUID) ([]*Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, price, qty
		FROM order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*Line
	for rows.Next() {
		line := &Line{}
		var productID sql.NullString
		if err := rows.Scan(&line.ID, &line.OrderID, &productID, &line.Name, &line.Price, &line.Qty); err != nil {
			return nil, err
		}
		if productID.Valid {
			pid, err := uuid.Parse(productID.String)
			if err != nil {
				return nil, fmt.Errorf("bad product id: %w", err)
			}
			line.ProductID = &pid
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
