package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
)

// Repository wires together attendance persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads one attendance record.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	var row models.AttendanceRecord
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindOpenShift loads the employee's record with no clock-out yet, if any.
func (r *Repository) FindOpenShift(ctx context.Context, employeeID uuid.UUID) (*models.AttendanceRecord, error) {
	var row models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out_at IS NULL", employeeID).
		Order("clock_in_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByOutletAndDay returns records for an outlet whose clock-in falls on
// the given day.
func (r *Repository) ListByOutletAndDay(ctx context.Context, outletID uuid.UUID, day time.Time) ([]models.AttendanceRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var rows []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("outlet_id = ? AND clock_in_at >= ? AND clock_in_at < ?", outletID, start, end).
		Order("clock_in_at ASC").
		Find(&rows).Error
	return rows, err
}

// Create inserts a new attendance record.
func (r *Repository) Create(ctx context.Context, row *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update saves the clock-out fields.
func (r *Repository) Update(ctx context.Context, row *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(row).Error
}
