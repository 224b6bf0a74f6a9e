package receipts

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var htmlTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"rupiah": FormatRupiah,
	"printedAt": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: monospace; font-size: 12px; margin: 0; }
  .receipt { width: {{.PageWidth}}; margin: 0 auto; padding: 8px; }
  .center { text-align: center; }
  .bold { font-weight: bold; }
  .row { display: flex; justify-content: space-between; }
  .sep { border-top: 1px dashed #000; margin: 4px 0; }
  @media print {
    @page { size: {{.PageWidth}} auto; margin: 0; }
    body { width: {{.PageWidth}}; }
  }
</style>
</head>
<body>
<div class="receipt">
  <div class="center bold">{{.R.BusinessName}}</div>
  {{- if .R.OutletName}}<div class="center">{{.R.OutletName}}</div>{{end}}
  {{- if and .R.ShowAddress .R.Address}}<div class="center">{{.R.Address}}</div>{{end}}
  {{- if and .R.ShowPhone .R.Phone}}<div class="center">{{.R.Phone}}</div>{{end}}
  {{- if .R.HeaderText}}<div class="center">{{.R.HeaderText}}</div>{{end}}
  <div class="sep"></div>
  <div class="row"><span>No</span><span>{{.R.ReceiptNumber}}</span></div>
  {{- if .R.ShowDate}}<div class="row"><span>Tanggal</span><span>{{printedAt .R.IssuedAt}}</span></div>{{end}}
  {{- if and .R.ShowCashier .R.CashierName}}<div class="row"><span>Kasir</span><span>{{.R.CashierName}}</span></div>{{end}}
  {{- if .R.BarberName}}<div class="row"><span>Barber</span><span>{{.R.BarberName}}</span></div>{{end}}
  {{- if and .R.ShowCustomer .R.CustomerName}}<div class="row"><span>Pelanggan</span><span>{{.R.CustomerName}}</span></div>{{end}}
  <div class="sep"></div>
  {{- range .R.Items}}
  <div class="row"><span>{{.Quantity}}x {{.Name}}</span><span>{{rupiah .LineTotal}}</span></div>
  {{- end}}
  <div class="sep"></div>
  <div class="row"><span>Subtotal</span><span>{{rupiah .R.Subtotal}}</span></div>
  {{- if gt .R.DiscountAmount 0}}<div class="row"><span>Diskon</span><span>-{{rupiah .R.DiscountAmount}}</span></div>{{end}}
  <div class="row bold"><span>Total</span><span>{{rupiah .R.Total}}</span></div>
  <div class="row"><span>Pembayaran</span><span>{{.R.PaymentMethod}}</span></div>
  {{- with .R.Cash}}
  <div class="row"><span>Tunai</span><span>{{rupiah .Received}}</span></div>
  <div class="row"><span>Kembali</span><span>{{rupiah .Change}}</span></div>
  {{- end}}
  {{- if .R.FooterText}}
  <div class="sep"></div>
  <div class="center">{{.R.FooterText}}</div>
  {{- end}}
</div>
</body>
</html>
`))

// RenderHTML renders the receipt as a self-contained HTML page sized to the
// outlet's paper width for browser printing.
func RenderHTML(r *Receipt) (string, error) {
	data := struct {
		R         *Receipt
		PageWidth string
	}{
		R:         r,
		PageWidth: fmt.Sprintf("%dmm", r.PaperWidthMM),
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering receipt html: %w", err)
	}
	return buf.String(), nil
}
