package cart

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// OutOfStockError reports a product with no remaining stock at the outlet.
type OutOfStockError struct {
	CatalogItemID uuid.UUID
	Name          string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.Name)
}

// InsufficientStockError reports a product whose requested quantity exceeds
// the remaining stock at the outlet.
type InsufficientStockError struct {
	CatalogItemID uuid.UUID
	Name          string
	Requested     int
	Available     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: requested %d but only %d in stock", e.Name, e.Requested, e.Available)
}

// ValidateStock checks every product line against the availability map and
// returns all violations at once. Products missing from the map are treated
// as depleted. Service lines never consume stock and are not checked.
func (c *Cart) ValidateStock(available map[uuid.UUID]int) error {
	var err error
	quantities := c.ProductQuantities()
	seen := make(map[uuid.UUID]bool)
	for _, line := range c.Lines {
		requested, ok := quantities[line.CatalogItemID]
		if !ok || seen[line.CatalogItemID] {
			continue
		}
		seen[line.CatalogItemID] = true

		onHand := available[line.CatalogItemID]
		switch {
		case onHand <= 0:
			err = multierr.Append(err, &OutOfStockError{
				CatalogItemID: line.CatalogItemID,
				Name:          line.Name,
			})
		case requested > onHand:
			err = multierr.Append(err, &InsufficientStockError{
				CatalogItemID: line.CatalogItemID,
				Name:          line.Name,
				Requested:     requested,
				Available:     onHand,
			})
		}
	}
	return err
}

// StockViolations unpacks the error returned by ValidateStock into
// serializable detail entries for API responses.
func StockViolations(err error) []StockViolation {
	if err == nil {
		return nil
	}
	var violations []StockViolation
	for _, e := range multierr.Errors(err) {
		switch v := e.(type) {
		case *OutOfStockError:
			violations = append(violations, StockViolation{
				CatalogItemID: v.CatalogItemID,
				Name:          v.Name,
				Reason:        "out_of_stock",
			})
		case *InsufficientStockError:
			violations = append(violations, StockViolation{
				CatalogItemID: v.CatalogItemID,
				Name:          v.Name,
				Reason:        "insufficient_stock",
				Requested:     v.Requested,
				Available:     v.Available,
			})
		}
	}
	return violations
}

// StockViolation is the API-facing shape of one stock check failure.
type StockViolation struct {
	CatalogItemID uuid.UUID `json:"catalog_item_id"`
	Name          string    `json:"name"`
	Reason        string    `json:"reason"`
	Requested     int       `json:"requested,omitempty"`
	Available     int       `json:"available,omitempty"`
}
