package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.OutletStock{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedStock(t *testing.T, repo *Repository, outletID, itemID uuid.UUID, qty, threshold int) {
	t.Helper()
	if err := repo.Upsert(context.Background(), &models.OutletStock{
		OutletID:          outletID,
		CatalogItemID:     itemID,
		Quantity:          qty,
		LowStockThreshold: threshold,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	itemID := uuid.New()

	seedStock(t, repo, outletID, itemID, 10, 5)
	seedStock(t, repo, outletID, itemID, 3, 2)

	row, err := repo.Find(context.Background(), outletID, itemID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.Quantity != 3 || row.LowStockThreshold != 2 {
		t.Fatalf("expected upsert to replace values, got %+v", row)
	}
}

func TestUpsertPersistsZeroThreshold(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	itemID := uuid.New()

	// Threshold zero disables the low-stock warning and must round-trip, both
	// on first insert and through the conflict update.
	seedStock(t, repo, outletID, itemID, 7, 0)

	row, err := repo.Find(context.Background(), outletID, itemID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.LowStockThreshold != 0 {
		t.Fatalf("expected threshold 0 after create, got %d", row.LowStockThreshold)
	}

	seedStock(t, repo, outletID, itemID, 7, 3)
	seedStock(t, repo, outletID, itemID, 7, 0)

	row, err = repo.Find(context.Background(), outletID, itemID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.LowStockThreshold != 0 {
		t.Fatalf("expected threshold 0 after update, got %d", row.LowStockThreshold)
	}
}

func TestDecrementGuardsAgainstOverselling(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	itemID := uuid.New()
	seedStock(t, repo, outletID, itemID, 2, 1)

	ok, err := repo.Decrement(context.Background(), outletID, itemID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to succeed")
	}

	// Stock is now zero; any further decrement must be refused.
	ok, err = repo.Decrement(context.Background(), outletID, itemID, 1)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if ok {
		t.Fatal("expected decrement refused at zero stock")
	}

	row, err := repo.Find(context.Background(), outletID, itemID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.Quantity != 0 {
		t.Fatalf("quantity must never go negative, got %d", row.Quantity)
	}
}

func TestDecrementRefusesPartialCoverage(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	itemID := uuid.New()
	seedStock(t, repo, outletID, itemID, 1, 1)

	ok, err := repo.Decrement(context.Background(), outletID, itemID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if ok {
		t.Fatal("expected decrement refused when stock cannot cover the quantity")
	}

	row, _ := repo.Find(context.Background(), outletID, itemID)
	if row.Quantity != 1 {
		t.Fatalf("refused decrement must not change stock, got %d", row.Quantity)
	}
}

func TestIncrementAddsToExistingQuantity(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	itemID := uuid.New()
	seedStock(t, repo, outletID, itemID, 4, 5)

	if err := repo.Increment(context.Background(), outletID, itemID, 6); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	row, _ := repo.Find(context.Background(), outletID, itemID)
	if row.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", row.Quantity)
	}
}

func TestListLowByOutletHonorsThresholdBoundary(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	otherOutlet := uuid.New()
	lowItem := uuid.New()
	boundaryItem := uuid.New()
	healthyItem := uuid.New()

	seedStock(t, repo, outletID, lowItem, 1, 5)
	// Quantity equal to the threshold still counts as low.
	seedStock(t, repo, outletID, boundaryItem, 5, 5)
	seedStock(t, repo, outletID, healthyItem, 20, 5)
	seedStock(t, repo, otherOutlet, lowItem, 1, 5)

	rows, err := repo.ListLowByOutlet(context.Background(), outletID)
	if err != nil {
		t.Fatalf("list low failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 low rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.OutletID != outletID {
			t.Fatalf("row leaked from another outlet: %+v", row)
		}
		if row.CatalogItemID == healthyItem {
			t.Fatal("healthy item must not appear in the low list")
		}
	}
}

func TestFindForItemsScopesToOutlet(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	otherOutlet := uuid.New()
	itemID := uuid.New()
	seedStock(t, repo, outletID, itemID, 5, 2)
	seedStock(t, repo, otherOutlet, itemID, 9, 2)

	rows, err := repo.FindForItems(context.Background(), outletID, []uuid.UUID{itemID})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Quantity != 5 {
		t.Fatalf("expected only the outlet's row, got %+v", rows)
	}

	rows, err = repo.FindForItems(context.Background(), outletID, nil)
	if err != nil {
		t.Fatalf("find with empty ids failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty id list, got %d", len(rows))
	}
}
