package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Employee is a staff member. Barbers serve customers; cashiers process payment.
// A single person can do both, so the role only scopes API access.
type Employee struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OutletID  *uuid.UUID         `gorm:"column:outlet_id;type:uuid"`
	FullName  string             `gorm:"column:full_name;not null"`
	Role      enums.EmployeeRole `gorm:"column:role;type:employee_role;not null;default:'barber'"`
	IsActive  bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
