package analytics

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository runs the read-only reporting aggregates.
type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
	DailySales(ctx context.Context, days int) ([]SalesPoint, error)
	PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error)
	CustomerInsights(ctx context.Context, limit int) ([]CustomerInsight, error)
}

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	err := r.db.GetContext(ctx, &o, `
		SELECT
			COALESCE(SUM(o.total), 0)                                   AS total_revenue,
			COUNT(o.id)                                                 AS total_orders,
			COUNT(o.id) FILTER (WHERE o.status = 'Pending')             AS pending_orders,
			COUNT(o.id) FILTER (WHERE o.status = 'Delivered')           AS completed_orders,
			COALESCE(AVG(o.total), 0)                                   AS avg_order_value,
			(SELECT COUNT(*) FROM users WHERE role = 'customer')        AS total_customers,
			(SELECT COUNT(*) FROM products)                             AS total_products,
			(SELECT COUNT(*) FROM stocks WHERE status = 'Low Stock')    AS low_stock_items,
			(SELECT COUNT(*) FROM stocks WHERE status = 'Out of Stock') AS out_of_stock_items
		FROM orders o`)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) DailySales(ctx context.Context, days int) ([]SalesPoint, error) {
	points := []SalesPoint{}
	err := r.db.SelectContext(ctx, &points, `
		SELECT
			date_trunc('day', created_at) AS day,
			COUNT(*)                      AS orders,
			COALESCE(SUM(total), 0)       AS revenue
		FROM orders
		WHERE created_at >= NOW() - $1 * INTERVAL '1 day'
		GROUP BY day
		ORDER BY day`, days)
	return points, err
}

func (r *postgresRepo) PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error) {
	products := []PopularProduct{}
	err := r.db.SelectContext(ctx, &products, `
		SELECT
			p.id                                  AS product_id,
			p.name                                AS name,
			p.category                            AS category,
			p.price                               AS price,
			ps.total_purchases                    AS total_purchases,
			ps.last_month_purchases               AS last_month_purchases,
			ps.total_purchases * p.price          AS revenue
		FROM purchase_stats ps
		JOIN products p ON p.id = ps.product_id
		ORDER BY ps.total_purchases DESC
		LIMIT $1`, limit)
	return products, err
}

func (r *postgresRepo) CustomerInsights(ctx context.Context, limit int) ([]CustomerInsight, error) {
	insights := []CustomerInsight{}
	err := r.db.SelectContext(ctx, &insights, `
		SELECT
			u.id                        AS customer_id,
			u.name                      AS name,
			u.email                     AS email,
			COUNT(o.id)                 AS orders,
			COALESCE(SUM(o.total), 0)   AS total_spent,
			COALESCE(AVG(o.total), 0)   AS avg_order,
			MAX(o.created_at)           AS last_order
		FROM users u
		LEFT JOIN orders o ON o.customer_id = u.id
		WHERE u.role = 'customer'
		GROUP BY u.id, u.name, u.email
		ORDER BY total_spent DESC
		LIMIT $1`, limit)
	return insights, err
}
