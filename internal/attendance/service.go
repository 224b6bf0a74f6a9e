package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// RecordDTO is the attendance record projection.
type RecordDTO struct {
	ID               uuid.UUID  `json:"id"`
	EmployeeID       uuid.UUID  `json:"employee_id"`
	OutletID         uuid.UUID  `json:"outlet_id"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at,omitempty"`
	ClockInPhotoKey  string     `json:"clock_in_photo_key"`
	ClockOutPhotoKey *string    `json:"clock_out_photo_key,omitempty"`
	WorkedMinutes    int        `json:"worked_minutes"`
}

// ClockInInput holds the validated payload to open a shift.
type ClockInInput struct {
	EmployeeID  uuid.UUID
	OutletID    uuid.UUID
	Photo       io.Reader
	ContentType string
}

// ClockOutInput holds the validated payload to close a shift.
type ClockOutInput struct {
	EmployeeID  uuid.UUID
	Photo       io.Reader
	ContentType string
}

type photoStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Service exposes shift clock-in/out with photo proof.
type Service interface {
	ClockIn(ctx context.Context, input ClockInInput) (*RecordDTO, error)
	ClockOut(ctx context.Context, input ClockOutInput) (*RecordDTO, error)
	ListDay(ctx context.Context, outletID uuid.UUID, day time.Time) ([]RecordDTO, error)
}

type service struct {
	repo   *Repository
	photos photoStore
	now    func() time.Time
}

// NewService builds the attendance service.
func NewService(repo *Repository, photos photoStore) Service {
	return &service{repo: repo, photos: photos, now: time.Now}
}

func (s *service) ClockIn(ctx context.Context, input ClockInInput) (*RecordDTO, error) {
	if input.Photo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clock-in photo is required")
	}

	// One open shift per employee.
	if _, err := s.repo.FindOpenShift(ctx, input.EmployeeID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "employee already has an open shift")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking open shift")
	}

	now := s.now()
	key := photoKey(input.EmployeeID, "in", now)
	if _, err := s.photos.Upload(ctx, key, input.ContentType, input.Photo); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading clock-in photo")
	}

	row := &models.AttendanceRecord{
		ID:              uuid.New(),
		EmployeeID:      input.EmployeeID,
		OutletID:        input.OutletID,
		ClockInAt:       now,
		ClockInPhotoKey: key,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating attendance record")
	}

	dto := toRecordDTO(*row)
	return &dto, nil
}

func (s *service) ClockOut(ctx context.Context, input ClockOutInput) (*RecordDTO, error) {
	if input.Photo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clock-out photo is required")
	}

	row, err := s.repo.FindOpenShift(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "employee has no open shift")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading open shift")
	}

	now := s.now()
	key := photoKey(input.EmployeeID, "out", now)
	if _, err := s.photos.Upload(ctx, key, input.ContentType, input.Photo); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading clock-out photo")
	}

	row.ClockOutAt = &now
	row.ClockOutPhotoKey = &key
	row.WorkedMinutes = WorkedMinutes(row.ClockInAt, now)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "closing attendance record")
	}

	dto := toRecordDTO(*row)
	return &dto, nil
}

func (s *service) ListDay(ctx context.Context, outletID uuid.UUID, day time.Time) ([]RecordDTO, error) {
	rows, err := s.repo.ListByOutletAndDay(ctx, outletID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attendance")
	}
	records := make([]RecordDTO, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecordDTO(row))
	}
	return records, nil
}

// WorkedMinutes returns the whole minutes between clock-in and clock-out,
// never negative.
func WorkedMinutes(in, out time.Time) int {
	if out.Before(in) {
		return 0
	}
	return int(out.Sub(in) / time.Minute)
}

func photoKey(employeeID uuid.UUID, direction string, at time.Time) string {
	return fmt.Sprintf("attendance/%s/%s_%s.jpg", employeeID, at.UTC().Format("20060102T150405"), direction)
}

func toRecordDTO(row models.AttendanceRecord) RecordDTO {
	return RecordDTO{
		ID:               row.ID,
		EmployeeID:       row.EmployeeID,
		OutletID:         row.OutletID,
		ClockInAt:        row.ClockInAt,
		ClockOutAt:       row.ClockOutAt,
		ClockInPhotoKey:  row.ClockInPhotoKey,
		ClockOutPhotoKey: row.ClockOutPhotoKey,
		WorkedMinutes:    row.WorkedMinutes,
	}
}
