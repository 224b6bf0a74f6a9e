package transactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// ItemDTO is one line of a persisted sale.
type ItemDTO struct {
	ID                uuid.UUID              `json:"id"`
	CatalogItemID     uuid.UUID              `json:"catalog_item_id"`
	Name              string                 `json:"name"`
	Type              enums.CatalogItemType  `json:"type"`
	UnitPrice         int64                  `json:"unit_price"`
	Qty               int                    `json:"qty"`
	LineTotal         int64                  `json:"line_total"`
	ServingEmployeeID *uuid.UUID             `json:"serving_employee_id,omitempty"`
	CommissionStatus  enums.CommissionStatus `json:"commission_status"`
	CommissionAmount  int64                  `json:"commission_amount"`
}

// TransactionDTO is the transaction projection returned to history screens.
type TransactionDTO struct {
	ID                uuid.UUID           `json:"id"`
	ReceiptNumber     string              `json:"receipt_number"`
	OutletID          uuid.UUID           `json:"outlet_id"`
	CashierID         uuid.UUID           `json:"cashier_id"`
	ServingEmployeeID uuid.UUID           `json:"serving_employee_id"`
	CustomerName      *string             `json:"customer_name,omitempty"`
	Subtotal          int64               `json:"subtotal"`
	DiscountType      *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue     int64               `json:"discount_value"`
	DiscountAmount    int64               `json:"discount_amount"`
	Total             int64               `json:"total"`
	PaymentMethod     enums.PaymentMethod `json:"payment_method"`
	Items             []ItemDTO           `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ListResult is one page of history plus the cursor for the next page.
type ListResult struct {
	Transactions []TransactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

func toTransactionDTO(row models.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:                row.ID,
		ReceiptNumber:     row.ReceiptNumber,
		OutletID:          row.OutletID,
		CashierID:         row.CashierID,
		ServingEmployeeID: row.ServingEmployeeID,
		CustomerName:      row.CustomerName,
		Subtotal:          row.Subtotal,
		DiscountType:      row.DiscountType,
		DiscountValue:     row.DiscountValue,
		DiscountAmount:    row.DiscountAmount,
		Total:             row.Total,
		PaymentMethod:     row.PaymentMethod,
		CreatedAt:         row.CreatedAt,
		Items:             make([]ItemDTO, 0, len(row.Items)),
	}
	for _, item := range row.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:                item.ID,
			CatalogItemID:     item.CatalogItemID,
			Name:              item.Name,
			Type:              item.Type,
			UnitPrice:         item.UnitPrice,
			Qty:               item.Qty,
			LineTotal:         item.LineTotal,
			ServingEmployeeID: item.ServingEmployeeID,
			CommissionStatus:  item.CommissionStatus,
			CommissionAmount:  item.CommissionAmount,
		})
	}
	return dto
}
