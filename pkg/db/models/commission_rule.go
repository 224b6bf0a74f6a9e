package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// CommissionRule is the per-(employee, service) payout: a percentage of the unit
// price or a fixed rupiah amount per unit sold.
type CommissionRule struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID    uuid.UUID            `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:ux_commission_rules_employee_item"`
	CatalogItemID uuid.UUID            `gorm:"column:catalog_item_id;type:uuid;not null;uniqueIndex:ux_commission_rules_employee_item"`
	Type          enums.CommissionType `gorm:"column:type;type:commission_type;not null"`
	Value         int64                `gorm:"column:value;not null"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
