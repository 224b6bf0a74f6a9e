package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	cartpkg "github.com/mfadlih/cukurid-backend/internal/cart"
	catalogsvc "github.com/mfadlih/cukurid-backend/internal/catalog"
	checkoutsvc "github.com/mfadlih/cukurid-backend/internal/checkout"
	receiptsvc "github.com/mfadlih/cukurid-backend/internal/receipts"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

type checkoutLineRequest struct {
	CatalogItemID     string  `json:"catalog_item_id" validate:"required,uuid"`
	Quantity          int     `json:"quantity" validate:"required,min=1"`
	ServingEmployeeID *string `json:"serving_employee_id,omitempty" validate:"omitempty,uuid"`
}

type checkoutDiscountRequest struct {
	Type  string `json:"type" validate:"required,oneof=percentage fixed"`
	Value int64  `json:"value" validate:"min=0"`
}

type checkoutRequest struct {
	OutletID          string                   `json:"outlet_id" validate:"required,uuid"`
	ServingEmployeeID string                   `json:"serving_employee_id" validate:"required,uuid"`
	CustomerName      *string                  `json:"customer_name,omitempty"`
	PaymentMethod     string                   `json:"payment_method" validate:"required"`
	CashReceived      *int64                   `json:"cash_received,omitempty" validate:"omitempty,min=0"`
	Discount          *checkoutDiscountRequest `json:"discount,omitempty"`
	Items             []checkoutLineRequest    `json:"items" validate:"required,min=1,dive"`
}

type checkoutItemResponse struct {
	CatalogItemID    uuid.UUID `json:"catalog_item_id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	UnitPrice        int64     `json:"unit_price"`
	Quantity         int       `json:"quantity"`
	LineTotal        int64     `json:"line_total"`
	CommissionStatus string    `json:"commission_status"`
}

type checkoutResponse struct {
	TransactionID  uuid.UUID              `json:"transaction_id"`
	ReceiptNumber  string                 `json:"receipt_number"`
	OutletID       uuid.UUID              `json:"outlet_id"`
	BarberName     string                 `json:"barber_name"`
	CashierName    string                 `json:"cashier_name"`
	CustomerName   *string                `json:"customer_name,omitempty"`
	Subtotal       int64                  `json:"subtotal"`
	DiscountAmount int64                  `json:"discount_amount"`
	Total          int64                  `json:"total"`
	PaymentMethod  string                 `json:"payment_method"`
	CashReceived   *int64                 `json:"cash_received,omitempty"`
	Change         *int64                 `json:"change,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Items          []checkoutItemResponse `json:"items"`
	Receipt        any                    `json:"receipt,omitempty"`
}

// Checkout runs the full sale pipeline and returns the persisted transaction
// with both receipt renderings.
func Checkout(svc checkoutsvc.Service, catalog catalogsvc.Service, receipts receiptsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cashierID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(r, catalog, cashierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := toCheckoutResponse(result, input.CashReceived)

		// Receipt rendering failures never reverse a completed sale.
		var cash *receiptsvc.CashInfo
		if input.CashReceived != nil && result.Change != nil {
			cash = &receiptsvc.CashInfo{Received: *input.CashReceived, Change: *result.Change}
		}
		if rendered, renderErr := receipts.RenderTransaction(r.Context(), result.Transaction.ID, cash); renderErr == nil {
			resp.Receipt = rendered
		} else if logg != nil {
			logg.Error(r.Context(), "receipt render after checkout failed", renderErr)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func (p checkoutRequest) toInput(r *http.Request, catalog catalogsvc.Service, cashierID uuid.UUID) (*checkoutsvc.Input, error) {
	outletID, err := uuid.Parse(p.OutletID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid outlet id")
	}
	servingID, err := uuid.Parse(p.ServingEmployeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid serving employee id")
	}
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(p.PaymentMethod))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	basket := cartpkg.Cart{OutletID: outletID}
	for _, line := range p.Items {
		itemID, parseErr := uuid.Parse(line.CatalogItemID)
		if parseErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid catalog item id")
		}
		item, itemErr := catalog.GetItem(r.Context(), itemID)
		if itemErr != nil {
			return nil, itemErr
		}
		if !item.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog item is inactive").
				WithDetails(map[string]any{"catalog_item_id": itemID})
		}

		cartLine := cartpkg.Line{
			CatalogItemID:   item.ID,
			Name:            item.Name,
			Type:            item.Type,
			UnitPrice:       item.Price,
			DurationMinutes: item.DurationMinutes,
			Quantity:        line.Quantity,
		}
		if line.ServingEmployeeID != nil {
			lineServing, servingErr := uuid.Parse(*line.ServingEmployeeID)
			if servingErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, servingErr, "invalid line serving employee id")
			}
			cartLine.ServingEmployeeID = &lineServing
		}
		basket.Lines = append(basket.Lines, cartLine)
	}

	input := &checkoutsvc.Input{
		OutletID:          outletID,
		CashierID:         cashierID,
		ServingEmployeeID: servingID,
		CustomerName:      p.CustomerName,
		Cart:              basket,
		PaymentMethod:     method,
		CashReceived:      p.CashReceived,
		Actor:             actorFromContext(r.Context()),
	}
	if p.Discount != nil {
		discountType, discountErr := enums.ParseDiscountType(p.Discount.Type)
		if discountErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, discountErr, "invalid discount type")
		}
		input.Discount = &cartpkg.Discount{Type: discountType, Value: p.Discount.Value}
	}
	return input, nil
}

func toCheckoutResponse(result *checkoutsvc.Result, cashReceived *int64) *checkoutResponse {
	tx := result.Transaction
	resp := &checkoutResponse{
		TransactionID:  tx.ID,
		ReceiptNumber:  tx.ReceiptNumber,
		OutletID:       tx.OutletID,
		BarberName:     result.BarberName,
		CashierName:    result.CashierName,
		CustomerName:   tx.CustomerName,
		Subtotal:       tx.Subtotal,
		DiscountAmount: tx.DiscountAmount,
		Total:          tx.Total,
		PaymentMethod:  string(tx.PaymentMethod),
		CashReceived:   cashReceived,
		Change:         result.Change,
		CreatedAt:      tx.CreatedAt,
	}
	resp.Items = make([]checkoutItemResponse, 0, len(tx.Items))
	for _, item := range tx.Items {
		resp.Items = append(resp.Items, checkoutItemResponse{
			CatalogItemID:    item.CatalogItemID,
			Name:             item.Name,
			Type:             string(item.Type),
			UnitPrice:        item.UnitPrice,
			Quantity:         item.Qty,
			LineTotal:        item.LineTotal,
			CommissionStatus: string(item.CommissionStatus),
		})
	}
	return resp
}
