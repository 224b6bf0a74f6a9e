package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Transaction is one completed sale. Money fields are immutable after checkout;
// cash received and change are receipt-only and never stored.
type Transaction struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReceiptNumber     string              `gorm:"column:receipt_number;not null;uniqueIndex:ux_transactions_receipt_number"`
	OutletID          uuid.UUID           `gorm:"column:outlet_id;type:uuid;not null"`
	CashierID         uuid.UUID           `gorm:"column:cashier_id;type:uuid;not null"`
	ServingEmployeeID uuid.UUID           `gorm:"column:serving_employee_id;type:uuid;not null"`
	CustomerName      *string             `gorm:"column:customer_name"`
	Subtotal          int64               `gorm:"column:subtotal;not null"`
	DiscountType      *enums.DiscountType `gorm:"column:discount_type;type:discount_type"`
	DiscountValue     int64               `gorm:"column:discount_value;not null;default:0"`
	DiscountAmount    int64               `gorm:"column:discount_amount;not null;default:0"`
	Total             int64               `gorm:"column:total;not null"`
	PaymentMethod     enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	Items             []TransactionItem   `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
