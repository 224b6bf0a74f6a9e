package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	commissionsvc "github.com/mfadlih/cukurid-backend/internal/commissions"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

// CommissionRuleList returns every rule configured for one employee.
func CommissionRuleList(svc commissionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := urlParamUUID(r, "employeeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rules, err := svc.ListRules(r.Context(), employeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rules)
	}
}

type upsertRuleRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required,uuid"`
	CatalogItemID string `json:"catalog_item_id" validate:"required,uuid"`
	Type          string `json:"type" validate:"required,oneof=percentage fixed"`
	Value         int64  `json:"value" validate:"required,min=0"`
}

// CommissionRuleUpsert creates or replaces the (employee, item) rule.
func CommissionRuleUpsert(svc commissionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employeeID, err := uuid.Parse(payload.EmployeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id"))
			return
		}
		itemID, err := uuid.Parse(payload.CatalogItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog item id"))
			return
		}
		ruleType, err := enums.ParseCommissionType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid commission type"))
			return
		}

		rule, err := svc.UpsertRule(r.Context(), commissionsvc.UpsertRuleInput{
			EmployeeID:    employeeID,
			CatalogItemID: itemID,
			Type:          ruleType,
			Value:         payload.Value,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rule)
	}
}

func CommissionRuleDelete(svc commissionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "ruleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteRule(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
