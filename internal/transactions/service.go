package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
	"github.com/mfadlih/cukurid-backend/pkg/outbox/payloads"
	"github.com/mfadlih/cukurid-backend/pkg/pagination"
)

// UpdateInput holds the mutable transaction fields. Money fields are
// immutable after checkout.
type UpdateInput struct {
	CustomerName  *string
	PaymentMethod *enums.PaymentMethod
	Actor         *outbox.ActorRef
}

// Service exposes transaction history operations.
type Service interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*TransactionDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*TransactionDTO, error)
	Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo   *Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds the transactions service.
func NewService(repo *Repository, tx txRunner, publisher outboxPublisher) Service {
	return &service{repo: repo, tx: tx, outbox: publisher}
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, filter, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}

	result := &ListResult{}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	result.Transactions = make([]TransactionDTO, 0, len(rows))
	for _, row := range rows {
		result.Transactions = append(result.Transactions, toTransactionDTO(row))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TransactionDTO, error) {
	row, err := s.repo.FindWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}
	dto := toTransactionDTO(*row)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*TransactionDTO, error) {
	row, err := s.repo.FindWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}

	if input.CustomerName != nil {
		row.CustomerName = input.CustomerName
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		row.PaymentMethod = *input.PaymentMethod
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if updateErr := s.repo.WithTx(tx).Update(ctx, row); updateErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, updateErr, "updating transaction")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventTransactionUpdated,
			AggregateType: enums.AggregateTransaction,
			AggregateID:   row.ID,
			Actor:         input.Actor,
			Version:       1,
			Data: payloads.TransactionUpdatedEvent{
				TransactionID: row.ID,
				OutletID:      row.OutletID,
				ReceiptNumber: row.ReceiptNumber,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	dto := toTransactionDTO(*row)
	return &dto, nil
}

// Delete removes the transaction. Stock consumed by the sale is deliberately
// not restored: returns are handled as stock adjustments, not deletions.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error {
	row, err := s.repo.FindWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if deleteErr := s.repo.WithTx(tx).Delete(ctx, id); deleteErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, deleteErr, "deleting transaction")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventTransactionDeleted,
			AggregateType: enums.AggregateTransaction,
			AggregateID:   row.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.TransactionDeletedEvent{
				TransactionID: row.ID,
				OutletID:      row.OutletID,
				ReceiptNumber: row.ReceiptNumber,
				Total:         row.Total,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}
