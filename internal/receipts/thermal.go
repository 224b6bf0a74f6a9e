package receipts

import (
	"github.com/mfadlih/cukurid-backend/pkg/escpos"
)

// RenderESCPOS renders the receipt as an ESC/POS byte stream for thermal
// printers. It mirrors RenderHTML section for section.
func RenderESCPOS(r *Receipt) []byte {
	doc := escpos.NewDocument(escpos.WidthForPaper(r.PaperWidthMM))

	doc.SetAlign(escpos.AlignCenter)
	doc.SetBold(true)
	doc.Text(r.BusinessName)
	doc.SetBold(false)
	if r.OutletName != "" {
		doc.Text(r.OutletName)
	}
	if r.ShowAddress && r.Address != "" {
		doc.Text(r.Address)
	}
	if r.ShowPhone && r.Phone != "" {
		doc.Text(r.Phone)
	}
	if r.HeaderText != "" {
		doc.Text(r.HeaderText)
	}

	doc.SetAlign(escpos.AlignLeft)
	doc.Separator('-')
	doc.KeyValue("No", r.ReceiptNumber)
	if r.ShowDate {
		doc.KeyValue("Tanggal", r.IssuedAt.Format("02/01/2006 15:04"))
	}
	if r.ShowCashier && r.CashierName != "" {
		doc.KeyValue("Kasir", r.CashierName)
	}
	if r.BarberName != "" {
		doc.KeyValue("Barber", r.BarberName)
	}
	if r.ShowCustomer && r.CustomerName != "" {
		doc.KeyValue("Pelanggan", r.CustomerName)
	}

	doc.Separator('-')
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, FormatRupiah(item.LineTotal))
	}

	doc.Separator('-')
	doc.KeyValue("Subtotal", FormatRupiah(r.Subtotal))
	if r.DiscountAmount > 0 {
		doc.KeyValue("Diskon", "-"+FormatRupiah(r.DiscountAmount))
	}
	doc.SetBold(true)
	doc.KeyValue("Total", FormatRupiah(r.Total))
	doc.SetBold(false)
	doc.KeyValue("Pembayaran", string(r.PaymentMethod))
	if r.Cash != nil {
		doc.KeyValue("Tunai", FormatRupiah(r.Cash.Received))
		doc.KeyValue("Kembali", FormatRupiah(r.Cash.Change))
	}

	if r.FooterText != "" {
		doc.Separator('-')
		doc.SetAlign(escpos.AlignCenter)
		doc.Text(r.FooterText)
	}

	doc.FeedLines(3)
	doc.Cut()
	return doc.Bytes()
}
