package receipts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

func openTemplateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.ReceiptTemplate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func TestUpsertTemplatePersistsDisabledTogglesOnCreate(t *testing.T) {
	repo := NewRepository(openTemplateTestDB(t))
	outletID := uuid.New()

	err := repo.UpsertTemplate(context.Background(), &models.ReceiptTemplate{
		OutletID:     outletID,
		PaperWidthMM: 58,
		HeaderText:   "Cukur Kemang",
		ShowAddress:  false,
		ShowPhone:    true,
		ShowDate:     true,
		ShowCashier:  true,
		ShowCustomer: false,
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	tpl, err := repo.FindTemplate(context.Background(), outletID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if tpl.ShowAddress {
		t.Fatal("ShowAddress=false was not persisted on create")
	}
	if tpl.ShowCustomer {
		t.Fatal("ShowCustomer=false was not persisted on create")
	}
	if !tpl.ShowPhone || !tpl.ShowDate || !tpl.ShowCashier {
		t.Fatalf("enabled toggles must stay enabled, got %+v", tpl)
	}
}

func TestUpsertTemplateTogglesOffThroughConflictPath(t *testing.T) {
	repo := NewRepository(openTemplateTestDB(t))
	outletID := uuid.New()

	allOn := &models.ReceiptTemplate{
		OutletID:     outletID,
		PaperWidthMM: 58,
		ShowAddress:  true,
		ShowPhone:    true,
		ShowDate:     true,
		ShowCashier:  true,
		ShowCustomer: true,
	}
	if err := repo.UpsertTemplate(context.Background(), allOn); err != nil {
		t.Fatalf("initial upsert failed: %v", err)
	}

	// Same outlet, so this hits the ON CONFLICT update, which must be able to
	// flip toggles off.
	update := &models.ReceiptTemplate{
		OutletID:     outletID,
		PaperWidthMM: 80,
		FooterText:   "Terima kasih",
		ShowAddress:  false,
		ShowPhone:    false,
		ShowDate:     true,
		ShowCashier:  true,
		ShowCustomer: true,
	}
	if err := repo.UpsertTemplate(context.Background(), update); err != nil {
		t.Fatalf("conflict upsert failed: %v", err)
	}

	tpl, err := repo.FindTemplate(context.Background(), outletID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if tpl.ShowAddress || tpl.ShowPhone {
		t.Fatalf("expected address and phone toggles off, got %+v", tpl)
	}
	if tpl.PaperWidthMM != 80 || tpl.FooterText != "Terima kasih" {
		t.Fatalf("expected updated width and footer, got %+v", tpl)
	}
}
