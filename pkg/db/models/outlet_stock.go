package models

import (
	"time"

	"github.com/google/uuid"
)

// OutletStock tracks on-hand quantity per (outlet, product). Quantity never drops
// below zero: checkout decrements are conditional on sufficient stock.
type OutletStock struct {
	OutletID          uuid.UUID `gorm:"column:outlet_id;type:uuid;primaryKey"`
	CatalogItemID     uuid.UUID `gorm:"column:catalog_item_id;type:uuid;primaryKey"`
	Quantity          int       `gorm:"column:quantity;not null;default:0"`
	// No gorm default tag: a zero threshold must survive the upsert, and GORM
	// drops zero-valued defaulted fields from INSERTs. The service supplies the
	// business default instead.
	LowStockThreshold int       `gorm:"column:low_stock_threshold;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
