package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, name, price, description, category, image, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, description, category, image, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Price, p.Description, p.Category, p.Image, p.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, uid).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Category, &p.Image,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListAvailable(ctx context.Context) ([]*MenuItem, error) {
	return r.queryMenu(ctx, `
		SELECT p.id, p.name, p.price, p.description, p.category, p.image,
		       p.is_active, p.created_at, p.updated_at, s.quantity
		FROM products p
		JOIN stocks s ON s.product_id = p.id
		WHERE p.is_active = TRUE AND s.quantity > 0
		ORDER BY p.name ASC`)
}

func (r *postgresRepo) ListWithStock(ctx context.Context) ([]*ProductWithStock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.description, p.category, p.image,
		       p.is_active, p.created_at, p.updated_at,
		       s.id, s.quantity, s.unit, s.expiry, s.status
		FROM products p
		LEFT JOIN stocks s ON s.product_id = p.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ProductWithStock
	for rows.Next() {
		item := &ProductWithStock{}
		var stockID sql.NullString
		var quantity sql.NullInt64
		var unit, status sql.NullString
		var expiry sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Description, &item.Category,
			&item.Image, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
			&stockID, &quantity, &unit, &expiry, &status); err != nil {
			return nil, err
		}
		if stockID.Valid {
			sid, err := uuid.Parse(stockID.String)
			if err != nil {
				return nil, fmt.Errorf("bad stock id: %w", err)
			}
			info := &StockInfo{
				ID:       sid,
				Quantity: int(quantity.Int64),
				Unit:     unit.String,
				Status:   status.String,
			}
			if expiry.Valid {
				t := expiry.Time
				info.Expiry = &t
			}
			item.Stock = info
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *postgresRepo) ListPopularAvailable(ctx context.Context, minMonthly, limit int) ([]*MenuItem, error) {
	return r.queryMenu(ctx, `
		SELECT p.id, p.name, p.price, p.description, p.category, p.image,
		       p.is_active, p.created_at, p.updated_at, s.quantity
		FROM purchase_stats ps
		JOIN products p ON p.id = ps.product_id
		JOIN stocks s ON s.product_id = p.id
		WHERE ps.last_month_purchases > $1 AND p.is_active = TRUE AND s.quantity > 0
		ORDER BY ps.last_month_purchases DESC
		LIMIT $2`, minMonthly, limit)
}

func (r *postgresRepo) ListRecentAvailable(ctx context.Context, exclude []uuid.UUID, limit int) ([]*MenuItem, error) {
	excluded := make([]string, len(exclude))
	for i, id := range exclude {
		excluded[i] = id.String()
	}
	return r.queryMenu(ctx, `
		SELECT p.id, p.name, p.price, p.description, p.category, p.image,
		       p.is_active, p.created_at, p.updated_at, s.quantity
		FROM products p
		JOIN stocks s ON s.product_id = p.id
		WHERE p.is_active = TRUE AND s.quantity > 0 AND NOT (p.id = ANY($1))
		ORDER BY p.created_at DESC
		LIMIT $2`, pq.Array(excluded), limit)
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3, category = $4,
		    image = $5, is_active = $6, updated_at = $7
		WHERE id = $8`,
		p.Name, p.Price, p.Description, p.Category, p.Image, p.IsActive, time.Now(), p.ID)
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

// Delete removes the product and its stock row together.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stocks WHERE product_id = $1`, uid); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
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

func (r *postgresRepo) queryMenu(ctx context.Context, query string, args ...interface{}) ([]*MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		item := &MenuItem{}
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Description, &item.Category,
			&item.Image, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
			&item.Quantity); err != nil {
			return nil, err
		}
		item.InStock = item.Quantity > 0
		items = append(items, item)
	}
	return items, rows.Err()
}
