package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	expensesvc "github.com/mfadlih/cukurid-backend/internal/expenses"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

// ExpenseSubmit records a pending expense. The receipt photo is an optional
// multipart file alongside the form fields.
func ExpenseSubmit(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submitterID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		outletID, err := uuid.Parse(strings.TrimSpace(r.FormValue("outlet_id")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "outlet_id form field must be a uuid"))
			return
		}
		amount, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("amount")), 10, 64)
		if err != nil || amount <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount form field must be a positive integer"))
			return
		}

		input := expensesvc.SubmitInput{
			OutletID:    outletID,
			SubmittedBy: submitterID,
			Category:    r.FormValue("category"),
			Amount:      amount,
			Description: r.FormValue("description"),
		}

		var photo multipart.File
		if file, header, fileErr := r.FormFile("receipt_photo"); fileErr == nil {
			photo = file
			input.ReceiptPhoto = file
			input.ContentType = header.Header.Get("Content-Type")
		}
		if photo != nil {
			defer photo.Close()
		}

		expense, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

// ExpenseList filters one outlet's expenses by status and date range.
func ExpenseList(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := validators.ParseQueryUUID(r, "outlet_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := expensesvc.ListFilter{OutletID: outletID}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseExpenseStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid expense status"))
				return
			}
			filter.Status = &status
		}
		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.From = from
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.To = to

		expenses, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expenses)
	}
}

func ExpenseGet(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

type reviewExpenseRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=approve reject"`
	Note     *string `json:"note,omitempty"`
}

// ExpenseReview approves or rejects a pending expense.
func ExpenseReview(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewerID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := urlParamUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Review(r.Context(), expensesvc.ReviewInput{
			ExpenseID:  id,
			ReviewerID: reviewerID,
			Approve:    payload.Decision == "approve",
			Note:       payload.Note,
			Actor:      actorFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func ExpenseDelete(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := urlParamUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id, requesterID, actorFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
