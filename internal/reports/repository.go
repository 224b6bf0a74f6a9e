package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// DailySalesRow aggregates one outlet's sales for a single day.
type DailySalesRow struct {
	Day              time.Time `json:"day"`
	TransactionCount int64     `json:"transaction_count"`
	GrossSales       int64     `json:"gross_sales"`
	TotalDiscounts   int64     `json:"total_discounts"`
	NetSales         int64     `json:"net_sales"`
}

// PaymentMethodRow breaks net sales down by payment method.
type PaymentMethodRow struct {
	PaymentMethod    enums.PaymentMethod `json:"payment_method"`
	TransactionCount int64               `json:"transaction_count"`
	NetSales         int64               `json:"net_sales"`
}

// TopItemRow ranks catalog items by quantity sold.
type TopItemRow struct {
	CatalogItemID uuid.UUID             `json:"catalog_item_id"`
	Name          string                `json:"name"`
	Type          enums.CatalogItemType `json:"type"`
	QuantitySold  int64                 `json:"quantity_sold"`
	Revenue       int64                 `json:"revenue"`
}

// CommissionRow totals credited commissions per serving employee.
type CommissionRow struct {
	EmployeeID      uuid.UUID `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	ServiceCount    int64     `json:"service_count"`
	CommissionTotal int64     `json:"commission_total"`
}

// Repository runs the raw aggregate queries behind outlet reports.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DailySales groups transactions into per-day totals for the range.
func (r *Repository) DailySales(ctx context.Context, outletID uuid.UUID, from, to time.Time) ([]DailySalesRow, error) {
	var rows []DailySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*)                      AS transaction_count,
		       COALESCE(SUM(subtotal), 0)    AS gross_sales,
		       COALESCE(SUM(discount_amount), 0) AS total_discounts,
		       COALESCE(SUM(total), 0)       AS net_sales
		FROM transactions
		WHERE outlet_id = ? AND created_at >= ? AND created_at < ?
		GROUP BY 1
		ORDER BY 1`,
		outletID, from, to,
	).Scan(&rows).Error
	return rows, err
}

// PaymentMethodBreakdown splits the range's sales by payment method.
func (r *Repository) PaymentMethodBreakdown(ctx context.Context, outletID uuid.UUID, from, to time.Time) ([]PaymentMethodRow, error) {
	var rows []PaymentMethodRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT payment_method,
		       COUNT(*)                AS transaction_count,
		       COALESCE(SUM(total), 0) AS net_sales
		FROM transactions
		WHERE outlet_id = ? AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY net_sales DESC`,
		outletID, from, to,
	).Scan(&rows).Error
	return rows, err
}

// TopItems ranks the range's best-selling items by quantity.
func (r *Repository) TopItems(ctx context.Context, outletID uuid.UUID, from, to time.Time, limit int) ([]TopItemRow, error) {
	var rows []TopItemRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT ti.catalog_item_id,
		       ti.name,
		       ti.type,
		       COALESCE(SUM(ti.qty), 0)        AS quantity_sold,
		       COALESCE(SUM(ti.line_total), 0) AS revenue
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.outlet_id = ? AND t.created_at >= ? AND t.created_at < ?
		GROUP BY ti.catalog_item_id, ti.name, ti.type
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?`,
		outletID, from, to, limit,
	).Scan(&rows).Error
	return rows, err
}

// CommissionTotals sums credited commissions per serving employee.
func (r *Repository) CommissionTotals(ctx context.Context, outletID uuid.UUID, from, to time.Time) ([]CommissionRow, error) {
	var rows []CommissionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT ti.serving_employee_id              AS employee_id,
		       e.full_name                         AS employee_name,
		       COUNT(*)                            AS service_count,
		       COALESCE(SUM(ti.commission_amount), 0) AS commission_total
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		JOIN employees e    ON e.id = ti.serving_employee_id
		WHERE t.outlet_id = ?
		  AND t.created_at >= ? AND t.created_at < ?
		  AND ti.commission_status = ?
		GROUP BY ti.serving_employee_id, e.full_name
		ORDER BY commission_total DESC`,
		outletID, from, to, enums.CommissionCredited,
	).Scan(&rows).Error
	return rows, err
}
