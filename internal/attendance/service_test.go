package attendance

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

type stubPhotoStore struct {
	uploads []string
	err     error
}

func (s *stubPhotoStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, key)
	return key, nil
}

type attendanceFixture struct {
	svc        Service
	photos     *stubPhotoStore
	clock      *time.Time
	employeeID uuid.UUID
	outletID   uuid.UUID
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// AutoMigrate cannot reproduce the uuid default functions the real schema
	// uses, so the table is created by hand.
	ddl := `CREATE TABLE attendance_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		outlet_id TEXT NOT NULL,
		clock_in_at DATETIME NOT NULL,
		clock_out_at DATETIME,
		clock_in_photo_key TEXT NOT NULL,
		clock_out_photo_key TEXT,
		worked_minutes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	f := &attendanceFixture{
		photos:     &stubPhotoStore{},
		clock:      &now,
		employeeID: uuid.New(),
		outletID:   uuid.New(),
	}
	svc := NewService(NewRepository(conn), f.photos).(*service)
	svc.now = func() time.Time { return *f.clock }
	f.svc = svc
	return f
}

func (f *attendanceFixture) clockIn(t *testing.T) *RecordDTO {
	t.Helper()
	dto, err := f.svc.ClockIn(context.Background(), ClockInInput{
		EmployeeID:  f.employeeID,
		OutletID:    f.outletID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("clock-in failed: %v", err)
	}
	return dto
}

func TestClockInOpensShift(t *testing.T) {
	f := newAttendanceFixture(t)
	dto := f.clockIn(t)

	if dto.ClockOutAt != nil {
		t.Fatal("fresh shift must have no clock-out")
	}
	wantPrefix := "attendance/" + f.employeeID.String() + "/"
	if !strings.HasPrefix(dto.ClockInPhotoKey, wantPrefix) {
		t.Fatalf("unexpected photo key %q", dto.ClockInPhotoKey)
	}
	if len(f.photos.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.photos.uploads))
	}
}

func TestClockInRequiresPhoto(t *testing.T) {
	f := newAttendanceFixture(t)
	_, err := f.svc.ClockIn(context.Background(), ClockInInput{EmployeeID: f.employeeID, OutletID: f.outletID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClockInTwiceIsStateConflict(t *testing.T) {
	f := newAttendanceFixture(t)
	f.clockIn(t)

	_, err := f.svc.ClockIn(context.Background(), ClockInInput{
		EmployeeID:  f.employeeID,
		OutletID:    f.outletID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestClockInUploadFailureIsDependencyError(t *testing.T) {
	f := newAttendanceFixture(t)
	f.photos.err = errors.New("bucket unavailable")

	_, err := f.svc.ClockIn(context.Background(), ClockInInput{
		EmployeeID:  f.employeeID,
		OutletID:    f.outletID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestClockOutClosesShift(t *testing.T) {
	f := newAttendanceFixture(t)
	f.clockIn(t)

	// Eight and a half hours later.
	*f.clock = f.clock.Add(8*time.Hour + 30*time.Minute)
	dto, err := f.svc.ClockOut(context.Background(), ClockOutInput{
		EmployeeID:  f.employeeID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("clock-out failed: %v", err)
	}
	if dto.ClockOutAt == nil || dto.ClockOutPhotoKey == nil {
		t.Fatalf("clock-out fields missing: %+v", dto)
	}
	if dto.WorkedMinutes != 510 {
		t.Fatalf("expected 510 worked minutes, got %d", dto.WorkedMinutes)
	}

	// The shift is closed, so a second clock-out has nothing to close.
	_, err = f.svc.ClockOut(context.Background(), ClockOutInput{
		EmployeeID:  f.employeeID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestClockOutWithoutOpenShift(t *testing.T) {
	f := newAttendanceFixture(t)
	_, err := f.svc.ClockOut(context.Background(), ClockOutInput{
		EmployeeID:  f.employeeID,
		Photo:       strings.NewReader("selfie"),
		ContentType: "image/jpeg",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListDayScopesToOutletAndDate(t *testing.T) {
	f := newAttendanceFixture(t)
	f.clockIn(t)

	rows, err := f.svc.ListDay(context.Background(), f.outletID, *f.clock)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one record, got %d", len(rows))
	}

	rows, err = f.svc.ListDay(context.Background(), f.outletID, f.clock.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no records on the next day, got %d", len(rows))
	}

	rows, err = f.svc.ListDay(context.Background(), uuid.New(), *f.clock)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no records for another outlet, got %d", len(rows))
	}
}

func TestWorkedMinutes(t *testing.T) {
	in := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		out  time.Time
		want int
	}{
		{in.Add(45 * time.Minute), 45},
		{in.Add(90*time.Minute + 59*time.Second), 90},
		{in, 0},
		{in.Add(-time.Hour), 0},
	}
	for _, tc := range cases {
		if got := WorkedMinutes(in, tc.out); got != tc.want {
			t.Fatalf("WorkedMinutes(%v) = %d, want %d", tc.out, got, tc.want)
		}
	}
}
