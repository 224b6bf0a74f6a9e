package models

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptTemplate is the per-outlet print configuration. Both the HTML and the
// thermal render paths consume the same toggles.
//
// The toggle columns carry no gorm default tags: GORM omits zero-valued fields
// with a default from INSERTs, which would make false impossible to persist
// through the upsert. Column defaults live in the migration DDL only.
type ReceiptTemplate struct {
	OutletID     uuid.UUID `gorm:"column:outlet_id;type:uuid;primaryKey"`
	PaperWidthMM int       `gorm:"column:paper_width_mm;not null;default:58"`
	HeaderText   string    `gorm:"column:header_text;not null"`
	FooterText   string    `gorm:"column:footer_text;not null"`
	ShowAddress  bool      `gorm:"column:show_address;not null"`
	ShowPhone    bool      `gorm:"column:show_phone;not null"`
	ShowDate     bool      `gorm:"column:show_date;not null"`
	ShowCashier  bool      `gorm:"column:show_cashier;not null"`
	ShowCustomer bool      `gorm:"column:show_customer;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
