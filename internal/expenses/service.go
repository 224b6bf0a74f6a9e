package expenses

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
	"github.com/mfadlih/cukurid-backend/pkg/outbox/payloads"
)

// ExpenseDTO is the expense projection returned to clients.
type ExpenseDTO struct {
	ID              uuid.UUID           `json:"id"`
	OutletID        uuid.UUID           `json:"outlet_id"`
	SubmittedBy     uuid.UUID           `json:"submitted_by"`
	Category        string              `json:"category"`
	Amount          int64               `json:"amount"`
	Description     string              `json:"description"`
	ReceiptPhotoKey *string             `json:"receipt_photo_key,omitempty"`
	Status          enums.ExpenseStatus `json:"status"`
	ReviewedBy      *uuid.UUID          `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	ReviewNote      *string             `json:"review_note,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// SubmitInput holds the validated payload to submit an expense.
type SubmitInput struct {
	OutletID    uuid.UUID
	SubmittedBy uuid.UUID
	Category    string
	Amount      int64
	Description string

	// Optional proof photo. When set, ContentType must describe it.
	ReceiptPhoto io.Reader
	ContentType  string
}

// ReviewInput approves or rejects a pending expense.
type ReviewInput struct {
	ExpenseID  uuid.UUID
	ReviewerID uuid.UUID
	Approve    bool
	Note       *string
	Actor      *outbox.ActorRef
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type photoStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Service exposes the expense submission and review workflow.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*ExpenseDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ExpenseDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ExpenseDTO, error)
	Review(ctx context.Context, input ReviewInput) (*ExpenseDTO, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID, actor *outbox.ActorRef) error
}

type service struct {
	repo   *Repository
	tx     txRunner
	outbox outboxPublisher
	photos photoStore
	now    func() time.Time
}

// NewService builds the expenses service.
func NewService(repo *Repository, tx txRunner, publisher outboxPublisher, photos photoStore) Service {
	return &service{repo: repo, tx: tx, outbox: publisher, photos: photos, now: time.Now}
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*ExpenseDTO, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	row := &models.Expense{
		ID:          uuid.New(),
		OutletID:    input.OutletID,
		SubmittedBy: input.SubmittedBy,
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Status:      enums.ExpensePending,
	}

	if input.ReceiptPhoto != nil {
		key := receiptPhotoKey(input.OutletID, s.now())
		if _, err := s.photos.Upload(ctx, key, input.ContentType, input.ReceiptPhoto); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading expense receipt photo")
		}
		row.ReceiptPhotoKey = &key
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating expense")
	}

	dto := toExpenseDTO(*row)
	return &dto, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ExpenseDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense status")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing expenses")
	}
	expenses := make([]ExpenseDTO, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, toExpenseDTO(row))
	}
	return expenses, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ExpenseDTO, error) {
	row, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toExpenseDTO(*row)
	return &dto, nil
}

// Review moves a pending expense to approved or rejected. Reviewing an
// already-reviewed expense is a state conflict, not an overwrite.
func (s *service) Review(ctx context.Context, input ReviewInput) (*ExpenseDTO, error) {
	row, err := s.findExpense(ctx, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	if row.Status != enums.ExpensePending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("expense is already %s", row.Status))
	}
	if row.SubmittedBy == input.ReviewerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submitter cannot review their own expense")
	}

	now := s.now()
	if input.Approve {
		row.Status = enums.ExpenseApproved
	} else {
		row.Status = enums.ExpenseRejected
	}
	row.ReviewedBy = &input.ReviewerID
	row.ReviewedAt = &now
	row.ReviewNote = input.Note

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if updateErr := s.repo.WithTx(tx).Update(ctx, row); updateErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, updateErr, "updating expense")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventExpenseUpdated,
			AggregateType: enums.AggregateExpense,
			AggregateID:   row.ID,
			Actor:         input.Actor,
			Version:       1,
			Data: payloads.ExpenseUpdatedEvent{
				ExpenseID: row.ID,
				OutletID:  row.OutletID,
				Status:    row.Status,
				Amount:    row.Amount,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	dto := toExpenseDTO(*row)
	return &dto, nil
}

// Delete removes a pending expense. Only the submitter may delete, and only
// before review.
func (s *service) Delete(ctx context.Context, id, requesterID uuid.UUID, actor *outbox.ActorRef) error {
	row, err := s.findExpense(ctx, id)
	if err != nil {
		return err
	}
	if row.Status != enums.ExpensePending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending expenses can be deleted")
	}
	if row.SubmittedBy != requesterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the submitter can delete an expense")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if deleteErr := s.repo.WithTx(tx).Delete(ctx, id); deleteErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, deleteErr, "deleting expense")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventExpenseDeleted,
			AggregateType: enums.AggregateExpense,
			AggregateID:   row.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.ExpenseDeletedEvent{
				ExpenseID: row.ID,
				OutletID:  row.OutletID,
				Amount:    row.Amount,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

func (s *service) findExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading expense")
	}
	return row, nil
}

func receiptPhotoKey(outletID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("expenses/%s/%s.jpg", outletID, at.UTC().Format("20060102T150405"))
}

func toExpenseDTO(row models.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:              row.ID,
		OutletID:        row.OutletID,
		SubmittedBy:     row.SubmittedBy,
		Category:        row.Category,
		Amount:          row.Amount,
		Description:     row.Description,
		ReceiptPhotoKey: row.ReceiptPhotoKey,
		Status:          row.Status,
		ReviewedBy:      row.ReviewedBy,
		ReviewedAt:      row.ReviewedAt,
		ReviewNote:      row.ReviewNote,
		CreatedAt:       row.CreatedAt,
	}
}
