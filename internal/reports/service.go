package reports

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

const defaultTopItemsLimit = 10

// SalesReport bundles the aggregates for one outlet over a range.
type SalesReport struct {
	OutletID    uuid.UUID          `json:"outlet_id"`
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	Daily       []DailySalesRow    `json:"daily"`
	ByPayment   []PaymentMethodRow `json:"by_payment"`
	TopItems    []TopItemRow       `json:"top_items"`
	Commissions []CommissionRow    `json:"commissions"`
}

// Service exposes outlet reporting queries.
type Service interface {
	SalesReport(ctx context.Context, outletID uuid.UUID, from, to time.Time) (*SalesReport, error)
	TopItems(ctx context.Context, outletID uuid.UUID, from, to time.Time, limit int) ([]TopItemRow, error)
	CommissionTotals(ctx context.Context, outletID uuid.UUID, from, to time.Time) ([]CommissionRow, error)
}

type service struct {
	repo *Repository
}

// NewService builds the reports service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) SalesReport(ctx context.Context, outletID uuid.UUID, from, to time.Time) (*SalesReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	daily, err := s.repo.DailySales(ctx, outletID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating daily sales")
	}
	byPayment, err := s.repo.PaymentMethodBreakdown(ctx, outletID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating payment methods")
	}
	topItems, err := s.repo.TopItems(ctx, outletID, from, to, defaultTopItemsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking top items")
	}
	commissions, err := s.repo.CommissionTotals(ctx, outletID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "totaling commissions")
	}

	return &SalesReport{
		OutletID:    outletID,
		From:        from,
		To:          to,
		Daily:       daily,
		ByPayment:   byPayment,
		TopItems:    topItems,
		Commissions: commissions,
	}, nil
}

func (s *service) TopItems(ctx context.Context, outletID uuid.UUID, from, to time.Time, limit int) ([]TopItemRow, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = defaultTopItemsLimit
	}
	rows, err := s.repo.TopItems(ctx, outletID, from, to, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking top items")
	}
	return rows, nil
}

func (s *service) CommissionTotals(ctx context.Context, outletID uuid.UUID, from, to time.Time) ([]CommissionRow, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	rows, err := s.repo.CommissionTotals(ctx, outletID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "totaling commissions")
	}
	return rows, nil
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "report range is required")
	}
	if !to.After(from) {
		return pkgerrors.New(pkgerrors.CodeValidation, "report range end must be after start")
	}
	return nil
}
