package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// PayrollAdjustment is a one-off bonus or penalty applied to an employee's
// payroll period, on top of credited commissions.
type PayrollAdjustment struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID    uuid.UUID            `gorm:"column:employee_id;type:uuid;not null"`
	Type          enums.AdjustmentType `gorm:"column:type;type:adjustment_type;not null"`
	Amount        int64                `gorm:"column:amount;not null"`
	Reason        string               `gorm:"column:reason;not null"`
	EffectiveDate time.Time            `gorm:"column:effective_date;type:date;not null"`
	CreatedBy     uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
