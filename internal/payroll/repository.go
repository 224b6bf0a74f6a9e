package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Repository wires together payroll persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a payroll adjustment.
func (r *Repository) Create(ctx context.Context, row *models.PayrollAdjustment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one adjustment.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PayrollAdjustment, error) {
	var row models.PayrollAdjustment
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByEmployee returns adjustments for an employee within the date range.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]models.PayrollAdjustment, error) {
	var rows []models.PayrollAdjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND effective_date >= ? AND effective_date <= ?", employeeID, from, to).
		Order("effective_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

// Delete removes an adjustment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PayrollAdjustment{}).Error
}

// SumCredited totals credited commission amounts for the employee's service
// lines whose transactions fall inside the range.
func (r *Repository) SumCredited(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.TransactionItem{}).
		Select("COALESCE(SUM(transaction_items.commission_amount), 0)").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transaction_items.serving_employee_id = ?", employeeID).
		Where("transaction_items.commission_status = ?", enums.CommissionCredited).
		Where("transactions.created_at >= ? AND transactions.created_at < ?", from, to).
		Scan(&total).Error
	return total, err
}
