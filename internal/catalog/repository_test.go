package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE service_categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE catalog_items (
  id TEXT PRIMARY KEY,
  category_id TEXT,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  price INTEGER NOT NULL,
  duration_minutes INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func seedItem(t *testing.T, repo *Repository, name string, itemType enums.CatalogItemType, price int64, active bool) *models.CatalogItem {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), &models.CatalogItem{
		ID:       uuid.New(),
		Name:     name,
		Type:     itemType,
		Price:    price,
		IsActive: active,
	})
	require.NoError(t, err)
	return item
}

func TestListActiveItemsFiltersInactiveAndType(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	seedItem(t, repo, "Cukur Dewasa", enums.CatalogItemService, 50000, true)
	seedItem(t, repo, "Pomade", enums.CatalogItemProduct, 45000, true)
	seedItem(t, repo, "Cukur Anak", enums.CatalogItemService, 35000, false)

	all, err := repo.ListActiveItems(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Inactive items never reach the till.
	for _, item := range all {
		assert.True(t, item.IsActive)
	}

	serviceType := enums.CatalogItemService
	services, err := repo.ListActiveItems(context.Background(), &serviceType)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Cukur Dewasa", services[0].Name)
}

func TestFindItemsByIDs(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	first := seedItem(t, repo, "Cukur Dewasa", enums.CatalogItemService, 50000, true)
	seedItem(t, repo, "Pomade", enums.CatalogItemProduct, 45000, true)

	items, err := repo.FindItemsByIDs(context.Background(), []uuid.UUID{first.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	// Empty input never hits the database.
	items, err = repo.FindItemsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeactivateItem(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	item := seedItem(t, repo, "Creambath", enums.CatalogItemService, 60000, true)

	require.NoError(t, repo.DeactivateItem(context.Background(), item.ID))

	reloaded, err := repo.FindItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	// Deactivated items are still loadable for historical transactions.
	ids, err := repo.FindItemsByIDs(context.Background(), []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestListCategoriesOrdering(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	for _, category := range []models.ServiceCategory{
		{ID: uuid.New(), Name: "Perawatan", SortOrder: 2},
		{ID: uuid.New(), Name: "Potong Rambut", SortOrder: 1},
		{ID: uuid.New(), Name: "Produk", SortOrder: 2},
	} {
		_, err := repo.CreateCategory(context.Background(), &category)
		require.NoError(t, err)
	}

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Potong Rambut", categories[0].Name)
	assert.Equal(t, "Perawatan", categories[1].Name)
	assert.Equal(t, "Produk", categories[2].Name)
}
