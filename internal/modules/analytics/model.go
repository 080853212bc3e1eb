package analytics

import "time"

// Overview is the headline tile set for the manager dashboard.
type Overview struct {
	TotalRevenue    float64 `db:"total_revenue" json:"total_revenue"`
	TotalOrders     int     `db:"total_orders" json:"total_orders"`
	PendingOrders   int     `db:"pending_orders" json:"pending_orders"`
	CompletedOrders int     `db:"completed_orders" json:"completed_orders"`
	AvgOrderValue   float64 `db:"avg_order_value" json:"avg_order_value"`
	TotalCustomers  int     `db:"total_customers" json:"total_customers"`
	TotalProducts   int     `db:"total_products" json:"total_products"`
	LowStockItems   int     `db:"low_stock_items" json:"low_stock_items"`
	OutOfStockItems int     `db:"out_of_stock_items" json:"out_of_stock_items"`
}

// SalesPoint is one day of order volume and revenue.
type SalesPoint struct {
	Day     time.Time `db:"day" json:"day"`
	Orders  int       `db:"orders" json:"orders"`
	Revenue float64   `db:"revenue" json:"revenue"`
}

// PopularProduct ranks a product by recorded purchases.
type PopularProduct struct {
	ProductID          string  `db:"product_id" json:"product_id"`
	Name               string  `db:"name" json:"name"`
	Category           string  `db:"category" json:"category"`
	Price              float64 `db:"price" json:"price"`
	TotalPurchases     int     `db:"total_purchases" json:"total_purchases"`
	LastMonthPurchases int     `db:"last_month_purchases" json:"last_month_purchases"`
	Revenue            float64 `db:"revenue" json:"revenue"`
}

// CustomerInsight summarizes one customer's order history.
type CustomerInsight struct {
	CustomerID string     `db:"customer_id" json:"customer_id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Orders     int        `db:"orders" json:"orders"`
	TotalSpent float64    `db:"total_spent" json:"total_spent"`
	AvgOrder   float64    `db:"avg_order" json:"avg_order"`
	LastOrder  *time.Time `db:"last_order" json:"last_order,omitempty"`
}
