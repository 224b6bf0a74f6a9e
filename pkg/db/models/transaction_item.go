package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// TransactionItem snapshots one cart line at checkout time, including the
// commission resolution outcome for service lines.
type TransactionItem struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TransactionID     uuid.UUID              `gorm:"column:transaction_id;type:uuid;not null"`
	CatalogItemID     uuid.UUID              `gorm:"column:catalog_item_id;type:uuid;not null"`
	Name              string                 `gorm:"column:name;not null"`
	Type              enums.CatalogItemType  `gorm:"column:type;type:catalog_item_type;not null"`
	UnitPrice         int64                  `gorm:"column:unit_price;not null"`
	Qty               int                    `gorm:"column:qty;not null"`
	LineTotal         int64                  `gorm:"column:line_total;not null"`
	ServingEmployeeID *uuid.UUID             `gorm:"column:serving_employee_id;type:uuid"`
	CommissionStatus  enums.CommissionStatus `gorm:"column:commission_status;type:commission_status;not null;default:'no_commission'"`
	CommissionType    *enums.CommissionType  `gorm:"column:commission_type;type:commission_type"`
	CommissionValue   int64                  `gorm:"column:commission_value;not null;default:0"`
	CommissionAmount  int64                  `gorm:"column:commission_amount;not null;default:0"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
}
