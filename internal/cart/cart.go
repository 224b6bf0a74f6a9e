package cart

import (
	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Line is one cart entry carrying a price snapshot of the catalog item at the
// moment it was added, so later price edits never change an open cart.
type Line struct {
	CatalogItemID     uuid.UUID
	Name              string
	Type              enums.CatalogItemType
	UnitPrice         int64
	DurationMinutes   int
	Quantity          int
	ServingEmployeeID *uuid.UUID
}

// LineTotal returns the rupiah amount for this line.
func (l Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is the in-flight sale being assembled at the till.
type Cart struct {
	OutletID uuid.UUID
	Lines    []Line
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal sums all line totals before any discount.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.LineTotal()
	}
	return total
}

// TotalDuration sums service durations in minutes, weighted by quantity.
// Items without a duration contribute zero.
func (c *Cart) TotalDuration() int {
	var minutes int
	for _, line := range c.Lines {
		if line.Type != enums.CatalogItemService {
			continue
		}
		minutes += line.DurationMinutes * line.Quantity
	}
	return minutes
}

// AddItem appends the line, or bumps quantity when the same item is already in
// the cart. Product lines are checked against the available stock first:
// depleted stock and over-requests are rejected before the cart changes.
func (c *Cart) AddItem(line Line, available int) error {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	idx := c.indexOf(line.CatalogItemID)
	if line.Type == enums.CatalogItemProduct {
		requested := line.Quantity
		if idx >= 0 {
			requested += c.Lines[idx].Quantity
		}
		if available <= 0 {
			return &OutOfStockError{CatalogItemID: line.CatalogItemID, Name: line.Name}
		}
		if requested > available {
			return &InsufficientStockError{
				CatalogItemID: line.CatalogItemID,
				Name:          line.Name,
				Requested:     requested,
				Available:     available,
			}
		}
	}

	if idx >= 0 {
		c.Lines[idx].Quantity += line.Quantity
		return nil
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// SetQuantity replaces the quantity for an item already in the cart. A zero
// or negative quantity removes the line. Product lines are re-checked against
// available stock.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity, available int) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return nil
	}

	line := c.Lines[idx]
	if line.Type == enums.CatalogItemProduct && quantity > available {
		return &InsufficientStockError{
			CatalogItemID: line.CatalogItemID,
			Name:          line.Name,
			Requested:     quantity,
			Available:     available,
		}
	}
	c.Lines[idx].Quantity = quantity
	return nil
}

// RemoveItem drops the line for the item, if present.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// ProductQuantities aggregates requested quantity per product line. Services
// are skipped: they do not consume stock.
func (c *Cart) ProductQuantities() map[uuid.UUID]int {
	quantities := make(map[uuid.UUID]int)
	for _, line := range c.Lines {
		if line.Type != enums.CatalogItemProduct {
			continue
		}
		quantities[line.CatalogItemID] += line.Quantity
	}
	return quantities
}

func (c *Cart) indexOf(itemID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.CatalogItemID == itemID {
			return i
		}
	}
	return -1
}
