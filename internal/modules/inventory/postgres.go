package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetByProduct(ctx context.Context, productID string) (*Stock, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrNotFound
	}
	s := &Stock{}
	var expiry sql.NullTime
	err = r.db.QueryRowContext(ctx, `
		SELECT id, product_id, quantity, unit, expiry, status, created_at, updated_at
		FROM stocks WHERE product_id = $1`, pid).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.Unit, &expiry, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		t := expiry.Time
		s.Expiry = &t
	}
	return s, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, s *Stock) error {
	var expiry interface{}
	if s.Expiry != nil {
		expiry = *s.Expiry
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stocks (id, product_id, quantity, unit, expiry, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, unit = EXCLUDED.unit,
		    expiry = EXCLUDED.expiry, status = EXCLUDED.status, updated_at = $7`,
		s.ID, s.ProductID, s.Quantity, s.Unit, expiry, s.Status, time.Now())
	return err
}
