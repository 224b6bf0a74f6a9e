package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Repository wires together catalog persistence helpers.
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

// FindItemByID loads a catalog item with its category.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemsByIDs loads catalog items for the given IDs, active or not.
func (r *Repository) FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveItems returns active catalog items ordered by category then name.
func (r *Repository) ListActiveItems(ctx context.Context, itemType *enums.CatalogItemType) ([]models.CatalogItem, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true)
	if itemType != nil {
		q = q.Where("type = ?", *itemType)
	}
	var items []models.CatalogItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListCategories returns all service categories in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	if err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateItem inserts a new catalog item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates an existing catalog item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem flips the item inactive so it stops appearing at the till.
func (r *Repository) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CatalogItem{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// CreateCategory inserts a service category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.ServiceCategory) (*models.ServiceCategory, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}
