package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/pagination"
)

// ListFilter narrows the transaction history query.
type ListFilter struct {
	OutletID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// Repository wires together transaction persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindWithItems loads one transaction with its line items.
func (r *Repository) FindWithItems(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var row models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns one page of history ordered newest first, using a
// (created_at, id) cursor. It fetches limit+1 rows to detect the next page.
func (r *Repository) List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).Preload("Items")
	if filter.OutletID != nil {
		q = q.Where("outlet_id = ?", *filter.OutletID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}
	if cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Transaction
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Update saves mutable transaction fields.
func (r *Repository) Update(ctx context.Context, row *models.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"customer_name":  row.CustomerName,
			"payment_method": row.PaymentMethod,
		}).Error
}

// Delete removes the transaction; items cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{}).Error
}
