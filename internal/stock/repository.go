package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

// Repository wires together outlet stock persistence helpers.
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

// Find loads one stock row for the (outlet, item) pair.
func (r *Repository) Find(ctx context.Context, outletID, itemID uuid.UUID) (*models.OutletStock, error) {
	var row models.OutletStock
	err := r.db.WithContext(ctx).
		First(&row, "outlet_id = ? AND catalog_item_id = ?", outletID, itemID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindForItems loads stock rows for the given items at one outlet.
func (r *Repository) FindForItems(ctx context.Context, outletID uuid.UUID, itemIDs []uuid.UUID) ([]models.OutletStock, error) {
	var rows []models.OutletStock
	if len(itemIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Where("outlet_id = ? AND catalog_item_id IN ?", outletID, itemIDs).
		Find(&rows).Error
	return rows, err
}

// ListByOutlet returns all stock rows for an outlet.
func (r *Repository) ListByOutlet(ctx context.Context, outletID uuid.UUID) ([]models.OutletStock, error) {
	var rows []models.OutletStock
	err := r.db.WithContext(ctx).
		Where("outlet_id = ?", outletID).
		Order("catalog_item_id ASC").
		Find(&rows).Error
	return rows, err
}

// ListLowByOutlet returns the outlet's stock rows at or below their threshold.
func (r *Repository) ListLowByOutlet(ctx context.Context, outletID uuid.UUID) ([]models.OutletStock, error) {
	var rows []models.OutletStock
	err := r.db.WithContext(ctx).
		Where("outlet_id = ? AND quantity <= low_stock_threshold", outletID).
		Order("catalog_item_id ASC").
		Find(&rows).Error
	return rows, err
}

// Upsert creates or replaces the stock row for the (outlet, item) pair.
func (r *Repository) Upsert(ctx context.Context, row *models.OutletStock) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "outlet_id"}, {Name: "catalog_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"quantity",
				"low_stock_threshold",
				"updated_at",
			}),
		}).
		Create(row).Error
}

// Decrement atomically reduces quantity by qty, guarded so the row can never
// go negative. It returns false when the remaining stock was insufficient.
func (r *Repository) Decrement(ctx context.Context, outletID, itemID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OutletStock{}).
		Where("outlet_id = ? AND catalog_item_id = ? AND quantity >= ?", outletID, itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Increment adds qty to the stock row, used by restock adjustments.
func (r *Repository) Increment(ctx context.Context, outletID, itemID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.OutletStock{}).
		Where("outlet_id = ? AND catalog_item_id = ?", outletID, itemID).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}
