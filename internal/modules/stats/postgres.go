package stats

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetByProduct(ctx context.Context, productID uuid.UUID) (*PurchaseStats, error) {
	ps := &PurchaseStats{}
	var lastPurchase sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, total_purchases, last_month_purchases, last_purchase, last_month_reset
		FROM purchase_stats WHERE product_id = $1`, productID).Scan(
		&ps.ID, &ps.ProductID, &ps.TotalPurchases, &ps.LastMonthPurchases,
		&lastPurchase, &ps.LastMonthReset)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastPurchase.Valid {
		t := lastPurchase.Time
		ps.LastPurchase = &t
	}
	return ps, nil
}

func (r *postgresRepo) Save(ctx context.Context, ps *PurchaseStats) error {
	var lastPurchase interface{}
	if ps.LastPurchase != nil {
		lastPurchase = *ps.LastPurchase
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchase_stats (id, product_id, total_purchases, last_month_purchases, last_purchase, last_month_reset)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET total_purchases = EXCLUDED.total_purchases,
		    last_month_purchases = EXCLUDED.last_month_purchases,
		    last_purchase = EXCLUDED.last_purchase,
		    last_month_reset = EXCLUDED.last_month_reset`,
		ps.ID, ps.ProductID, ps.TotalPurchases, ps.LastMonthPurchases,
		lastPurchase, ps.LastMonthReset)
	return err
}
