package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	receiptsvc "github.com/mfadlih/cukurid-backend/internal/receipts"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

func ReceiptTemplateGet(svc receiptsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tpl, err := svc.GetTemplate(r.Context(), outletID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tpl)
	}
}

type updateTemplateRequest struct {
	PaperWidthMM int    `json:"paper_width_mm" validate:"required,oneof=58 80"`
	HeaderText   string `json:"header_text"`
	FooterText   string `json:"footer_text"`
	ShowAddress  bool   `json:"show_address"`
	ShowPhone    bool   `json:"show_phone"`
	ShowDate     bool   `json:"show_date"`
	ShowCashier  bool   `json:"show_cashier"`
	ShowCustomer bool   `json:"show_customer"`
}

func ReceiptTemplateUpdate(svc receiptsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTemplateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tpl, err := svc.UpdateTemplate(r.Context(), outletID, receiptsvc.UpdateTemplateInput{
			PaperWidthMM: payload.PaperWidthMM,
			HeaderText:   payload.HeaderText,
			FooterText:   payload.FooterText,
			ShowAddress:  payload.ShowAddress,
			ShowPhone:    payload.ShowPhone,
			ShowDate:     payload.ShowDate,
			ShowCashier:  payload.ShowCashier,
			ShowCustomer: payload.ShowCustomer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tpl)
	}
}

// ReceiptRender re-renders both receipt formats for a stored transaction.
// Cash figures are never persisted, so reprints of cash sales pass them back
// via cash_received / change query parameters.
func ReceiptRender(svc receiptsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cash, err := cashInfoFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rendered, err := svc.RenderTransaction(r.Context(), id, cash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rendered)
	}
}

func cashInfoFromQuery(r *http.Request) (*receiptsvc.CashInfo, error) {
	rawReceived := strings.TrimSpace(r.URL.Query().Get("cash_received"))
	if rawReceived == "" {
		return nil, nil
	}
	received, err := strconv.ParseInt(rawReceived, 10, 64)
	if err != nil || received < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cash_received must be a non-negative integer")
	}

	change := int64(0)
	if rawChange := strings.TrimSpace(r.URL.Query().Get("change")); rawChange != "" {
		change, err = strconv.ParseInt(rawChange, 10, 64)
		if err != nil || change < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "change must be a non-negative integer")
		}
	}

	return &receiptsvc.CashInfo{Received: received, Change: change}, nil
}
