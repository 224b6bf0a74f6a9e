package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// CatalogItem is a sellable service or retail product. Prices are whole rupiah.
// DurationMinutes only applies to services and feeds the queue estimate.
type CatalogItem struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID      *uuid.UUID            `gorm:"column:category_id;type:uuid"`
	Name            string                `gorm:"column:name;not null"`
	Type            enums.CatalogItemType `gorm:"column:type;type:catalog_item_type;not null"`
	Price           int64                 `gorm:"column:price;not null"`
	DurationMinutes int                   `gorm:"column:duration_minutes;not null;default:0"`
	// No gorm default tag: inactive items must insert as-is instead of GORM
	// silently dropping the zero-valued column and letting the DB default win.
	IsActive        bool                  `gorm:"column:is_active;not null"`
	Category        *ServiceCategory      `gorm:"foreignKey:CategoryID"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
