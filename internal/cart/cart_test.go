package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

func serviceLine(name string, price int64, minutes int) Line {
	return Line{
		CatalogItemID:   uuid.New(),
		Name:            name,
		Type:            enums.CatalogItemService,
		UnitPrice:       price,
		DurationMinutes: minutes,
		Quantity:        1,
	}
}

func productLine(name string, price int64, qty int) Line {
	return Line{
		CatalogItemID: uuid.New(),
		Name:          name,
		Type:          enums.CatalogItemProduct,
		UnitPrice:     price,
		Quantity:      qty,
	}
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	pomade := productLine("Pomade", 45000, 1)

	if err := c.AddItem(pomade, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := c.AddItem(pomade, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}

	// Third unit would exceed the two in stock.
	err := c.AddItem(pomade, 2)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if insufficient.Requested != 3 || insufficient.Available != 2 {
		t.Fatalf("unexpected violation: %+v", insufficient)
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("failed add must not mutate the cart, got quantity %d", c.Lines[0].Quantity)
	}
}

func TestAddItemRejectsDepletedProduct(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	err := c.AddItem(productLine("Hair Tonic", 60000, 1), 0)
	var out *OutOfStockError
	if !errors.As(err, &out) {
		t.Fatalf("expected out of stock error, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("cart must stay empty after a rejected add")
	}
}

func TestAddItemServicesIgnoreStock(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	if err := c.AddItem(serviceLine("Cukur Dewasa", 50000, 30), 0); err != nil {
		t.Fatalf("service add failed: %v", err)
	}
	if c.Subtotal() != 50000 {
		t.Fatalf("expected subtotal 50000, got %d", c.Subtotal())
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	line := serviceLine("Cukur Anak", 35000, 20)
	line.Quantity = 0
	if err := c.AddItem(line, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if c.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity defaulted to 1, got %d", c.Lines[0].Quantity)
	}
}

func TestSetQuantityRemovesLineAtZero(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	line := serviceLine("Creambath", 75000, 45)
	if err := c.AddItem(line, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.SetQuantity(line.CatalogItemID, 0, 0); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("expected line removed at quantity zero")
	}
}

func TestSetQuantityChecksProductStock(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	line := productLine("Pomade", 45000, 1)
	if err := c.AddItem(line, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.SetQuantity(line.CatalogItemID, 6, 5); err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if err := c.SetQuantity(line.CatalogItemID, 5, 5); err != nil {
		t.Fatalf("set within stock failed: %v", err)
	}
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}
}

func TestTotalDurationCountsServicesOnly(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	haircut := serviceLine("Cukur Dewasa", 50000, 30)
	haircut.Quantity = 2
	if err := c.AddItem(haircut, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(productLine("Pomade", 45000, 1), 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := c.TotalDuration(); got != 60 {
		t.Fatalf("expected 60 minutes, got %d", got)
	}
}

func TestValidateStockCollectsAllViolations(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	pomade := productLine("Pomade", 45000, 3)
	tonic := productLine("Hair Tonic", 60000, 1)
	if err := c.AddItem(pomade, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.AddItem(tonic, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	err := c.ValidateStock(map[uuid.UUID]int{
		pomade.CatalogItemID: 2,
		// tonic missing from the map: treated as depleted
	})
	if err == nil {
		t.Fatal("expected stock violations")
	}

	violations := StockViolations(err)
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(violations))
	}
	byItem := map[uuid.UUID]StockViolation{}
	for _, v := range violations {
		byItem[v.CatalogItemID] = v
	}
	if byItem[pomade.CatalogItemID].Reason != "insufficient_stock" {
		t.Fatalf("unexpected pomade violation: %+v", byItem[pomade.CatalogItemID])
	}
	if byItem[tonic.CatalogItemID].Reason != "out_of_stock" {
		t.Fatalf("unexpected tonic violation: %+v", byItem[tonic.CatalogItemID])
	}
}

func TestValidateStockPassesWhenCovered(t *testing.T) {
	c := &Cart{OutletID: uuid.New()}
	pomade := productLine("Pomade", 45000, 2)
	if err := c.AddItem(pomade, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.ValidateStock(map[uuid.UUID]int{pomade.CatalogItemID: 2}); err != nil {
		t.Fatalf("expected no violations, got %v", err)
	}
}
