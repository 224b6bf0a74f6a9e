package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// TransactionCreatedEvent signals a completed checkout at an outlet.
type TransactionCreatedEvent struct {
	TransactionID uuid.UUID           `json:"transaction_id"`
	OutletID      uuid.UUID           `json:"outlet_id"`
	ReceiptNumber string              `json:"receipt_number"`
	Total         int64               `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	ItemCount     int                 `json:"item_count"`
}

// TransactionUpdatedEvent is emitted when mutable transaction fields change.
type TransactionUpdatedEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OutletID      uuid.UUID `json:"outlet_id"`
	ReceiptNumber string    `json:"receipt_number"`
}

// TransactionDeletedEvent is emitted when a transaction is removed.
// Stock consumed by the transaction is intentionally not restored.
type TransactionDeletedEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OutletID      uuid.UUID `json:"outlet_id"`
	ReceiptNumber string    `json:"receipt_number"`
	Total         int64     `json:"total"`
}

// ExpenseUpdatedEvent is emitted when an expense is reviewed or edited.
type ExpenseUpdatedEvent struct {
	ExpenseID uuid.UUID           `json:"expense_id"`
	OutletID  uuid.UUID           `json:"outlet_id"`
	Status    enums.ExpenseStatus `json:"status"`
	Amount    int64               `json:"amount"`
}

// ExpenseDeletedEvent is emitted when a pending expense is removed.
type ExpenseDeletedEvent struct {
	ExpenseID uuid.UUID `json:"expense_id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Amount    int64     `json:"amount"`
}

// StockLowEvent fires when a checkout drops an item at or below its threshold.
type StockLowEvent struct {
	OutletID      uuid.UUID `json:"outlet_id"`
	CatalogItemID uuid.UUID `json:"catalog_item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Threshold     int       `json:"threshold"`
	ObservedAt    time.Time `json:"observed_at"`
}
