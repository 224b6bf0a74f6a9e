package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one shift: clock-in with a photo, optional clock-out with a
// second photo. WorkedMinutes is computed at clock-out.
type AttendanceRecord struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID       uuid.UUID  `gorm:"column:employee_id;type:uuid;not null"`
	OutletID         uuid.UUID  `gorm:"column:outlet_id;type:uuid;not null"`
	ClockInAt        time.Time  `gorm:"column:clock_in_at;not null"`
	ClockOutAt       *time.Time `gorm:"column:clock_out_at"`
	ClockInPhotoKey  string     `gorm:"column:clock_in_photo_key;not null"`
	ClockOutPhotoKey *string    `gorm:"column:clock_out_photo_key"`
	WorkedMinutes    int        `gorm:"column:worked_minutes;not null;default:0"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
