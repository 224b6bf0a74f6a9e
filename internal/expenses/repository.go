package expenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// ListFilter narrows expense listings.
type ListFilter struct {
	OutletID uuid.UUID
	Status   *enums.ExpenseStatus
	From     *time.Time
	To       *time.Time
}

// Repository wires together expense persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads one expense.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var row models.Expense
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns expenses for an outlet, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).Where("outlet_id = ?", filter.OutletID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var rows []models.Expense
	err := query.Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

// Create inserts a new expense.
func (r *Repository) Create(ctx context.Context, row *models.Expense) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update saves the expense row.
func (r *Repository) Update(ctx context.Context, row *models.Expense) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes an expense.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{}).Error
}
