package payroll

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// AdjustmentDTO is one bonus or penalty line.
type AdjustmentDTO struct {
	ID            uuid.UUID            `json:"id"`
	EmployeeID    uuid.UUID            `json:"employee_id"`
	Type          enums.AdjustmentType `json:"type"`
	Amount        int64                `json:"amount"`
	Reason        string               `json:"reason"`
	EffectiveDate time.Time            `json:"effective_date"`
	CreatedBy     uuid.UUID            `json:"created_by"`
}

// CreateAdjustmentInput holds the validated payload to record an adjustment.
type CreateAdjustmentInput struct {
	EmployeeID    uuid.UUID
	Type          enums.AdjustmentType
	Amount        int64
	Reason        string
	EffectiveDate time.Time
	CreatedBy     uuid.UUID
}

// PeriodSummary is the payroll arithmetic for one employee over a range:
// credited commissions plus bonuses minus penalties.
type PeriodSummary struct {
	EmployeeID  uuid.UUID       `json:"employee_id"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Commissions int64           `json:"commissions"`
	Bonuses     int64           `json:"bonuses"`
	Penalties   int64           `json:"penalties"`
	NetTotal    int64           `json:"net_total"`
	Adjustments []AdjustmentDTO `json:"adjustments"`
}

// Service exposes payroll adjustment management and period summaries.
type Service interface {
	CreateAdjustment(ctx context.Context, input CreateAdjustmentInput) (*AdjustmentDTO, error)
	ListAdjustments(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AdjustmentDTO, error)
	DeleteAdjustment(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (*PeriodSummary, error)
}

type service struct {
	repo *Repository
}

// NewService builds the payroll service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAdjustment(ctx context.Context, input CreateAdjustmentInput) (*AdjustmentDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid adjustment type")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	}
	if input.EffectiveDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "effective date is required")
	}

	row := &models.PayrollAdjustment{
		ID:            uuid.New(),
		EmployeeID:    input.EmployeeID,
		Type:          input.Type,
		Amount:        input.Amount,
		Reason:        strings.TrimSpace(input.Reason),
		EffectiveDate: input.EffectiveDate,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating adjustment")
	}

	dto := toAdjustmentDTO(*row)
	return &dto, nil
}

func (s *service) ListAdjustments(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AdjustmentDTO, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing adjustments")
	}
	adjustments := make([]AdjustmentDTO, 0, len(rows))
	for _, row := range rows {
		adjustments = append(adjustments, toAdjustmentDTO(row))
	}
	return adjustments, nil
}

func (s *service) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "adjustment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading adjustment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting adjustment")
	}
	return nil
}

func (s *service) Summary(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (*PeriodSummary, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "period end must be after start")
	}

	commissions, err := s.repo.SumCredited(ctx, employeeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing commissions")
	}

	rows, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing adjustments")
	}

	summary := &PeriodSummary{
		EmployeeID:  employeeID,
		From:        from,
		To:          to,
		Commissions: commissions,
		Adjustments: make([]AdjustmentDTO, 0, len(rows)),
	}
	for _, row := range rows {
		summary.Adjustments = append(summary.Adjustments, toAdjustmentDTO(row))
		switch row.Type {
		case enums.AdjustmentBonus:
			summary.Bonuses += row.Amount
		case enums.AdjustmentPenalty:
			summary.Penalties += row.Amount
		}
	}
	summary.NetTotal = summary.Commissions + summary.Bonuses - summary.Penalties
	return summary, nil
}

func toAdjustmentDTO(row models.PayrollAdjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:            row.ID,
		EmployeeID:    row.EmployeeID,
		Type:          row.Type,
		Amount:        row.Amount,
		Reason:        row.Reason,
		EffectiveDate: row.EffectiveDate,
		CreatedBy:     row.CreatedBy,
	}
}
