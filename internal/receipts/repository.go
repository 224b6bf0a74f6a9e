package receipts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

// Repository persists per-outlet receipt templates.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindTemplate loads the template for one outlet.
func (r *Repository) FindTemplate(ctx context.Context, outletID uuid.UUID) (*models.ReceiptTemplate, error) {
	var tpl models.ReceiptTemplate
	if err := r.db.WithContext(ctx).First(&tpl, "outlet_id = ?", outletID).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// UpsertTemplate creates or replaces the outlet's template.
func (r *Repository) UpsertTemplate(ctx context.Context, tpl *models.ReceiptTemplate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "outlet_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"paper_width_mm",
				"header_text",
				"footer_text",
				"show_address",
				"show_phone",
				"show_date",
				"show_cashier",
				"show_customer",
				"updated_at",
			}),
		}).
		Create(tpl).Error
}
