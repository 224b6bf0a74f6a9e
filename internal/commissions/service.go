package commissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// RuleDTO is the commission rule projection returned to admin clients.
type RuleDTO struct {
	ID            uuid.UUID            `json:"id"`
	EmployeeID    uuid.UUID            `json:"employee_id"`
	CatalogItemID uuid.UUID            `json:"catalog_item_id"`
	Type          enums.CommissionType `json:"type"`
	Value         int64                `json:"value"`
}

// UpsertRuleInput holds the validated payload to create or replace a rule.
type UpsertRuleInput struct {
	EmployeeID    uuid.UUID
	CatalogItemID uuid.UUID
	Type          enums.CommissionType
	Value         int64
}

// Service exposes commission rule management.
type Service interface {
	ListRules(ctx context.Context, employeeID uuid.UUID) ([]RuleDTO, error)
	UpsertRule(ctx context.Context, input UpsertRuleInput) (*RuleDTO, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds the commissions service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListRules(ctx context.Context, employeeID uuid.UUID) ([]RuleDTO, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing commission rules")
	}
	rules := make([]RuleDTO, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, toRuleDTO(row))
	}
	return rules, nil
}

func (s *service) UpsertRule(ctx context.Context, input UpsertRuleInput) (*RuleDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid commission type")
	}
	if input.Value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission value must not be negative")
	}
	if input.Type == enums.CommissionPercentage && input.Value > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission percentage must not exceed 100")
	}

	rule := &models.CommissionRule{
		EmployeeID:    input.EmployeeID,
		CatalogItemID: input.CatalogItemID,
		Type:          input.Type,
		Value:         input.Value,
	}
	if err := s.repo.Upsert(ctx, rule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving commission rule")
	}

	saved, err := s.repo.FindRule(ctx, input.EmployeeID, input.CatalogItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading commission rule")
	}
	dto := toRuleDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "commission rule not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting commission rule")
	}
	return nil
}

func toRuleDTO(rule models.CommissionRule) RuleDTO {
	return RuleDTO{
		ID:            rule.ID,
		EmployeeID:    rule.EmployeeID,
		CatalogItemID: rule.CatalogItemID,
		Type:          rule.Type,
		Value:         rule.Value,
	}
}
