package expenses

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
)

type dbTxRunner struct {
	db *gorm.DB
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

type recordingPublisher struct {
	events []outbox.DomainEvent
}

func (p *recordingPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

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

type expenseFixture struct {
	svc       Service
	repo      *Repository
	publisher *recordingPublisher
	photos    *stubPhotoStore
	outletID  uuid.UUID
	staffID   uuid.UUID
	managerID uuid.UUID
}

func newExpenseFixture(t *testing.T) *expenseFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// AutoMigrate cannot reproduce the uuid default functions the real schema
	// uses, so the table is created by hand.
	ddl := `CREATE TABLE expenses (
		id TEXT PRIMARY KEY,
		outlet_id TEXT NOT NULL,
		submitted_by TEXT NOT NULL,
		category TEXT NOT NULL,
		amount INTEGER NOT NULL,
		description TEXT NOT NULL,
		receipt_photo_key TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		reviewed_by TEXT,
		reviewed_at DATETIME,
		review_note TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	f := &expenseFixture{
		repo:      NewRepository(conn),
		publisher: &recordingPublisher{},
		photos:    &stubPhotoStore{},
		outletID:  uuid.New(),
		staffID:   uuid.New(),
		managerID: uuid.New(),
	}
	f.svc = NewService(f.repo, dbTxRunner{db: conn}, f.publisher, f.photos)
	return f
}

func (f *expenseFixture) submitPending(t *testing.T) *ExpenseDTO {
	t.Helper()
	dto, err := f.svc.Submit(context.Background(), SubmitInput{
		OutletID:    f.outletID,
		SubmittedBy: f.staffID,
		Category:    "supplies",
		Amount:      125000,
		Description: "Shaving cream restock",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return dto
}

func TestSubmitCreatesPendingExpense(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	if dto.Status != enums.ExpensePending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
	if dto.ReceiptPhotoKey != nil {
		t.Fatal("no photo submitted, key must be empty")
	}
}

func TestSubmitUploadsReceiptPhoto(t *testing.T) {
	f := newExpenseFixture(t)
	dto, err := f.svc.Submit(context.Background(), SubmitInput{
		OutletID:     f.outletID,
		SubmittedBy:  f.staffID,
		Category:     "supplies",
		Amount:       50000,
		Description:  "Razor blades",
		ReceiptPhoto: strings.NewReader("jpeg-bytes"),
		ContentType:  "image/jpeg",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if dto.ReceiptPhotoKey == nil || !strings.HasPrefix(*dto.ReceiptPhotoKey, "expenses/"+f.outletID.String()+"/") {
		t.Fatalf("unexpected photo key %v", dto.ReceiptPhotoKey)
	}
	if len(f.photos.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.photos.uploads))
	}
}

func TestSubmitPhotoUploadFailureIsDependencyError(t *testing.T) {
	f := newExpenseFixture(t)
	f.photos.err = errors.New("bucket unavailable")

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		OutletID:     f.outletID,
		SubmittedBy:  f.staffID,
		Category:     "supplies",
		Amount:       50000,
		Description:  "Razor blades",
		ReceiptPhoto: strings.NewReader("jpeg-bytes"),
		ContentType:  "image/jpeg",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newExpenseFixture(t)
	cases := []SubmitInput{
		{OutletID: f.outletID, SubmittedBy: f.staffID, Amount: 100, Description: "x"},
		{OutletID: f.outletID, SubmittedBy: f.staffID, Category: "supplies", Amount: 0, Description: "x"},
		{OutletID: f.outletID, SubmittedBy: f.staffID, Category: "supplies", Amount: 100},
	}
	for i, input := range cases {
		_, err := f.svc.Submit(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestReviewApprovesPendingExpense(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)
	note := "Looks right"

	reviewed, err := f.svc.Review(context.Background(), ReviewInput{
		ExpenseID:  dto.ID,
		ReviewerID: f.managerID,
		Approve:    true,
		Note:       &note,
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != enums.ExpenseApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != f.managerID {
		t.Fatalf("reviewer not recorded: %v", reviewed.ReviewedBy)
	}
	if reviewed.ReviewedAt == nil || reviewed.ReviewNote == nil || *reviewed.ReviewNote != note {
		t.Fatalf("review metadata missing: %+v", reviewed)
	}

	if len(f.publisher.events) != 1 || f.publisher.events[0].EventType != enums.EventExpenseUpdated {
		t.Fatalf("expected expense_updated event, got %+v", f.publisher.events)
	}
}

func TestReviewRejectsPendingExpense(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	reviewed, err := f.svc.Review(context.Background(), ReviewInput{
		ExpenseID:  dto.ID,
		ReviewerID: f.managerID,
		Approve:    false,
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != enums.ExpenseRejected {
		t.Fatalf("expected rejected, got %s", reviewed.Status)
	}
}

func TestReviewTwiceIsStateConflict(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	if _, err := f.svc.Review(context.Background(), ReviewInput{ExpenseID: dto.ID, ReviewerID: f.managerID, Approve: true}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	_, err := f.svc.Review(context.Background(), ReviewInput{ExpenseID: dto.ID, ReviewerID: f.managerID, Approve: false})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestReviewBlocksSelfReview(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	_, err := f.svc.Review(context.Background(), ReviewInput{ExpenseID: dto.ID, ReviewerID: f.staffID, Approve: true})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeletePendingExpense(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	if err := f.svc.Delete(context.Background(), dto.ID, f.staffID, nil); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), dto.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	var sawDeleted bool
	for _, event := range f.publisher.events {
		if event.EventType == enums.EventExpenseDeleted {
			sawDeleted = true
		}
	}
	if !sawDeleted {
		t.Fatal("expected expense_deleted event")
	}
}

func TestDeleteReviewedExpenseIsStateConflict(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)
	if _, err := f.svc.Review(context.Background(), ReviewInput{ExpenseID: dto.ID, ReviewerID: f.managerID, Approve: true}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	err := f.svc.Delete(context.Background(), dto.ID, f.staffID, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestDeleteByNonSubmitterIsForbidden(t *testing.T) {
	f := newExpenseFixture(t)
	dto := f.submitPending(t)

	err := f.svc.Delete(context.Background(), dto.ID, f.managerID, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	f := newExpenseFixture(t)
	first := f.submitPending(t)
	f.submitPending(t)
	if _, err := f.svc.Review(context.Background(), ReviewInput{ExpenseID: first.ID, ReviewerID: f.managerID, Approve: true}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	approved := enums.ExpenseApproved
	rows, err := f.svc.List(context.Background(), ListFilter{OutletID: f.outletID, Status: &approved})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != first.ID {
		t.Fatalf("expected only the approved expense, got %+v", rows)
	}

	rows, err = f.svc.List(context.Background(), ListFilter{OutletID: f.outletID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both expenses, got %d", len(rows))
	}
}
