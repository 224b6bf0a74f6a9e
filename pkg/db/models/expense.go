package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Expense is an outlet cost submitted by staff and reviewed by a manager.
// Only pending expenses may be approved, rejected, or deleted.
type Expense struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OutletID        uuid.UUID           `gorm:"column:outlet_id;type:uuid;not null"`
	SubmittedBy     uuid.UUID           `gorm:"column:submitted_by;type:uuid;not null"`
	Category        string              `gorm:"column:category;not null"`
	Amount          int64               `gorm:"column:amount;not null"`
	Description     string              `gorm:"column:description;not null"`
	ReceiptPhotoKey *string             `gorm:"column:receipt_photo_key"`
	Status          enums.ExpenseStatus `gorm:"column:status;type:expense_status;not null;default:'pending'"`
	ReviewedBy      *uuid.UUID          `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt      *time.Time          `gorm:"column:reviewed_at"`
	ReviewNote      *string             `gorm:"column:review_note"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
