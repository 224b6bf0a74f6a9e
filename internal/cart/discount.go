package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// Discount is the discount the cashier keyed in. Value is a whole percentage
// for percentage discounts and a rupiah amount for fixed discounts.
type Discount struct {
	Type  enums.DiscountType
	Value int64
}

// Totals is the priced result of applying a discount to a subtotal.
type Totals struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
}

// ApplyDiscount computes the discount amount and the resulting total.
// Percentage values are clamped to [0, 100]; fixed amounts are clamped to the
// subtotal so the total never goes negative. Rounding is half-up to the
// nearest rupiah.
func ApplyDiscount(subtotal int64, discount *Discount) (Totals, error) {
	if subtotal < 0 {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must not be negative")
	}

	totals := Totals{Subtotal: subtotal, Total: subtotal}
	if discount == nil {
		return totals, nil
	}

	switch discount.Type {
	case enums.DiscountPercentage:
		pct := discount.Value
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		amount := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(pct)).
			Div(decimal.NewFromInt(100)).
			Round(0)
		totals.DiscountAmount = amount.IntPart()

	case enums.DiscountFixed:
		amount := discount.Value
		if amount < 0 {
			amount = 0
		}
		if amount > subtotal {
			amount = subtotal
		}
		totals.DiscountAmount = amount

	default:
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}

	totals.Total = subtotal - totals.DiscountAmount
	return totals, nil
}

// CashPayment validates a cash tender against the total and returns change.
type CashPayment struct {
	AmountPaid int64
	Change     int64
}

// ApplyCash verifies the tendered cash covers the total. The shortfall is
// reported so the till can show exactly how much more is needed.
func ApplyCash(total, amountPaid int64) (CashPayment, error) {
	if amountPaid < total {
		return CashPayment{}, pkgerrors.New(pkgerrors.CodeValidation, "cash tendered is less than the total").
			WithDetails(map[string]int64{"shortfall": total - amountPaid})
	}
	return CashPayment{
		AmountPaid: amountPaid,
		Change:     amountPaid - total,
	}, nil
}
