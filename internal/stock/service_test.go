package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

type stubItemLoader struct {
	items map[uuid.UUID]*models.CatalogItem
}

func (s *stubItemLoader) FindItemByID(_ context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubItemLoader) FindItemsByIDs(_ context.Context, ids []uuid.UUID) ([]models.CatalogItem, error) {
	var out []models.CatalogItem
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func TestLowStockListsOnlyRowsAtOrBelowThreshold(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	pomade := uuid.New()
	tonic := uuid.New()

	loader := &stubItemLoader{items: map[uuid.UUID]*models.CatalogItem{
		pomade: {ID: pomade, Name: "Pomade", Type: enums.CatalogItemProduct},
		tonic:  {ID: tonic, Name: "Hair Tonic", Type: enums.CatalogItemProduct},
	}}
	svc := NewService(repo, loader)

	seedStock(t, repo, outletID, pomade, 2, 5)
	seedStock(t, repo, outletID, tonic, 30, 5)

	levels, err := svc.LowStock(context.Background(), outletID)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("expected 1 low level, got %d", len(levels))
	}
	if levels[0].CatalogItemID != pomade || levels[0].ItemName != "Pomade" {
		t.Fatalf("unexpected low level: %+v", levels[0])
	}
	if !levels[0].IsLow {
		t.Fatal("low listing must flag rows as low")
	}
}

func TestLowStockEmptyWhenAllHealthy(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	pomade := uuid.New()

	loader := &stubItemLoader{items: map[uuid.UUID]*models.CatalogItem{
		pomade: {ID: pomade, Name: "Pomade", Type: enums.CatalogItemProduct},
	}}
	svc := NewService(repo, loader)

	seedStock(t, repo, outletID, pomade, 10, 5)

	levels, err := svc.LowStock(context.Background(), outletID)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if len(levels) != 0 {
		t.Fatalf("expected no low levels, got %+v", levels)
	}
}

func TestSetStockPersistsZeroThreshold(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	outletID := uuid.New()
	pomade := uuid.New()

	loader := &stubItemLoader{items: map[uuid.UUID]*models.CatalogItem{
		pomade: {ID: pomade, Name: "Pomade", Type: enums.CatalogItemProduct},
	}}
	svc := NewService(repo, loader)

	zero := 0
	level, err := svc.SetStock(context.Background(), SetStockInput{
		OutletID:          outletID,
		CatalogItemID:     pomade,
		Quantity:          4,
		LowStockThreshold: &zero,
	})
	if err != nil {
		t.Fatalf("set stock failed: %v", err)
	}
	if level.LowStockThreshold != 0 {
		t.Fatalf("expected threshold 0, got %d", level.LowStockThreshold)
	}

	row, err := repo.Find(context.Background(), outletID, pomade)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.LowStockThreshold != 0 {
		t.Fatalf("threshold 0 must survive persistence, got %d", row.LowStockThreshold)
	}
}
