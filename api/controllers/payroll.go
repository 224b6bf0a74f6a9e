package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	payrollsvc "github.com/mfadlih/cukurid-backend/internal/payroll"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

type createAdjustmentRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required,uuid"`
	Type          string `json:"type" validate:"required,oneof=bonus penalty"`
	Amount        int64  `json:"amount" validate:"required,min=1"`
	Reason        string `json:"reason" validate:"required"`
	EffectiveDate string `json:"effective_date" validate:"required"`
}

// PayrollCreateAdjustment records a bonus or penalty.
func PayrollCreateAdjustment(svc payrollsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAdjustmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employeeID, err := uuid.Parse(payload.EmployeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id"))
			return
		}
		adjustmentType, err := enums.ParseAdjustmentType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid adjustment type"))
			return
		}
		effectiveDate, err := time.Parse("2006-01-02", payload.EffectiveDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "effective_date must be YYYY-MM-DD"))
			return
		}

		adjustment, err := svc.CreateAdjustment(r.Context(), payrollsvc.CreateAdjustmentInput{
			EmployeeID:    employeeID,
			Type:          adjustmentType,
			Amount:        payload.Amount,
			Reason:        payload.Reason,
			EffectiveDate: effectiveDate,
			CreatedBy:     creatorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, adjustment)
	}
}

// PayrollListAdjustments lists adjustments for an employee within a range.
func PayrollListAdjustments(svc payrollsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := urlParamUUID(r, "employeeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, to, err := periodFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		adjustments, err := svc.ListAdjustments(r.Context(), employeeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, adjustments)
	}
}

func PayrollDeleteAdjustment(svc payrollsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "adjustmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteAdjustment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PayrollSummary returns commissions + bonuses − penalties for a period.
func PayrollSummary(svc payrollsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := urlParamUUID(r, "employeeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, to, err := periodFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), employeeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func periodFromQuery(r *http.Request) (time.Time, time.Time, error) {
	from, err := validators.ParseQueryTime(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := validators.ParseQueryTime(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from == nil || to == nil {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "from and to query parameters are required")
	}
	return *from, *to, nil
}
