package commissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

// Repository wires together commission rule persistence helpers.
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

// FindRule loads the rule for one (employee, catalog item) pair.
func (r *Repository) FindRule(ctx context.Context, employeeID, itemID uuid.UUID) (*models.CommissionRule, error) {
	var rule models.CommissionRule
	err := r.db.WithContext(ctx).
		First(&rule, "employee_id = ? AND catalog_item_id = ?", employeeID, itemID).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// FindRules loads all rules for the employee/item pairs present in the keys.
// The result is keyed by employee then item for O(1) lookup during checkout.
func (r *Repository) FindRules(ctx context.Context, employeeIDs, itemIDs []uuid.UUID) (map[uuid.UUID]map[uuid.UUID]models.CommissionRule, error) {
	rules := make(map[uuid.UUID]map[uuid.UUID]models.CommissionRule)
	if len(employeeIDs) == 0 || len(itemIDs) == 0 {
		return rules, nil
	}
	var rows []models.CommissionRule
	err := r.db.WithContext(ctx).
		Where("employee_id IN ? AND catalog_item_id IN ?", employeeIDs, itemIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		byItem, ok := rules[row.EmployeeID]
		if !ok {
			byItem = make(map[uuid.UUID]models.CommissionRule)
			rules[row.EmployeeID] = byItem
		}
		byItem[row.CatalogItemID] = row
	}
	return rules, nil
}

// ListByEmployee returns all rules configured for one employee.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.CommissionRule, error) {
	var rows []models.CommissionRule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// Upsert creates or replaces the rule for the (employee, item) pair.
func (r *Repository) Upsert(ctx context.Context, rule *models.CommissionRule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "catalog_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type",
				"value",
				"updated_at",
			}),
		}).
		Create(rule).Error
}

// Delete removes a rule by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CommissionRule{}).Error
}
