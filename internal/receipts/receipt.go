package receipts

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Item is one printed line on the receipt.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// CashInfo carries the tendered amount and change for cash sales. It is
// receipt-only data and is never persisted with the transaction.
type CashInfo struct {
	Received int64
	Change   int64
}

// Receipt is the single structured model both render paths consume, so the
// HTML and thermal output always carry the same sections.
type Receipt struct {
	BusinessName string
	OutletName   string
	Address      string
	Phone        string
	HeaderText   string

	ReceiptNumber string
	IssuedAt      time.Time
	CashierName   string
	CustomerName  string
	BarberName    string

	Items []Item

	Subtotal       int64
	DiscountAmount int64
	Total          int64

	PaymentMethod enums.PaymentMethod
	Cash          *CashInfo

	FooterText string

	PaperWidthMM int
	ShowAddress  bool
	ShowPhone    bool
	ShowDate     bool
	ShowCashier  bool
	ShowCustomer bool
}

// Build assembles the receipt from a completed transaction, the outlet, the
// per-outlet template, and global receipt config.
func Build(
	tx *models.Transaction,
	outlet *models.Outlet,
	cashierName, barberName string,
	tpl *models.ReceiptTemplate,
	cfg config.ReceiptConfig,
	cash *CashInfo,
) *Receipt {
	r := &Receipt{
		BusinessName:   cfg.BusinessName,
		ReceiptNumber:  tx.ReceiptNumber,
		IssuedAt:       tx.CreatedAt,
		CashierName:    cashierName,
		BarberName:     barberName,
		Subtotal:       tx.Subtotal,
		DiscountAmount: tx.DiscountAmount,
		Total:          tx.Total,
		PaymentMethod:  tx.PaymentMethod,
		FooterText:     cfg.FooterText,
		PaperWidthMM:   58,
		ShowAddress:    true,
		ShowPhone:      true,
		ShowDate:       true,
		ShowCashier:    true,
		ShowCustomer:   true,
	}

	if outlet != nil {
		r.OutletName = outlet.Name
		r.Address = outlet.Address
		if outlet.Phone != nil {
			r.Phone = *outlet.Phone
		}
	}
	if tx.CustomerName != nil {
		r.CustomerName = *tx.CustomerName
	}
	if tx.PaymentMethod == enums.PaymentMethodCash {
		r.Cash = cash
	}

	if tpl != nil {
		r.PaperWidthMM = tpl.PaperWidthMM
		r.ShowAddress = tpl.ShowAddress
		r.ShowPhone = tpl.ShowPhone
		r.ShowDate = tpl.ShowDate
		r.ShowCashier = tpl.ShowCashier
		r.ShowCustomer = tpl.ShowCustomer
		if tpl.HeaderText != "" {
			r.HeaderText = tpl.HeaderText
		}
		if tpl.FooterText != "" {
			r.FooterText = tpl.FooterText
		}
	}

	r.Items = make([]Item, 0, len(tx.Items))
	for _, item := range tx.Items {
		r.Items = append(r.Items, Item{
			Name:      item.Name,
			Quantity:  item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return r
}

// FormatRupiah renders a whole-rupiah amount with thousand separators,
// e.g. 50000 -> "Rp 50.000".
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
