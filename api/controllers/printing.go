package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	"github.com/mfadlih/cukurid-backend/internal/printing"
	receiptsvc "github.com/mfadlih/cukurid-backend/internal/receipts"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

type printerConnectRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=usb network none"`
	USBPath string `json:"usb_path,omitempty"`
	Address string `json:"address,omitempty"`
}

func PrinterConnect(bridge *printing.Bridge, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload printerConnectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := bridge.Connect(r.Context(), outletID, printing.ConnectInput{
			Kind:    payload.Kind,
			USBPath: payload.USBPath,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

func PrinterDisconnect(bridge *printing.Bridge, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := bridge.Disconnect(r.Context(), outletID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "disconnected"})
	}
}

func PrinterStatus(bridge *printing.Bridge, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bridge.StatusFor(outletID))
	}
}

type printReceiptRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
	CashReceived  *int64 `json:"cash_received,omitempty" validate:"omitempty,min=0"`
	Change        *int64 `json:"change,omitempty" validate:"omitempty,min=0"`
}

// PrinterPrintReceipt renders the thermal receipt and pushes it to the
// outlet's printer. A print failure never affects the stored sale.
func PrinterPrintReceipt(bridge *printing.Bridge, receipts receiptsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload printReceiptRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transactionID, err := uuid.Parse(payload.TransactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction id"))
			return
		}

		var cash *receiptsvc.CashInfo
		if payload.CashReceived != nil {
			cash = &receiptsvc.CashInfo{Received: *payload.CashReceived}
			if payload.Change != nil {
				cash.Change = *payload.Change
			}
		}

		rendered, err := receipts.RenderTransaction(r.Context(), transactionID, cash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := bridge.Write(r.Context(), outletID, rendered.ESCPOS); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "printed"})
	}
}
