package receipts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{50000, "Rp 50.000"},
		{1250000, "Rp 1.250.000"},
		{-45000, "-Rp 45.000"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.amount); got != tc.want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func sampleTransaction() *models.Transaction {
	customer := "Pak Dedi"
	return &models.Transaction{
		ID:            uuid.New(),
		ReceiptNumber: "20260831-0007",
		CustomerName:  &customer,
		Subtotal:      95000,
		DiscountAmount: 9500,
		Total:         85500,
		PaymentMethod: enums.PaymentMethodCash,
		CreatedAt:     time.Date(2026, 8, 31, 10, 15, 0, 0, time.UTC),
		Items: []models.TransactionItem{
			{Name: "Cukur Dewasa", Qty: 1, UnitPrice: 50000, LineTotal: 50000},
			{Name: "Pomade", Qty: 1, UnitPrice: 45000, LineTotal: 45000},
		},
	}
}

func sampleOutlet() *models.Outlet {
	phone := "021-5551234"
	return &models.Outlet{
		ID:      uuid.New(),
		Name:    "CukurID Kemang",
		Address: "Jl. Kemang Raya No. 8",
		Phone:   &phone,
	}
}

func sampleConfig() config.ReceiptConfig {
	return config.ReceiptConfig{
		BusinessName: "CukurID Barbershop",
		FooterText:   "Terima kasih atas kunjungan Anda",
	}
}

func TestBuildAppliesTemplateToggles(t *testing.T) {
	tpl := &models.ReceiptTemplate{
		PaperWidthMM: 80,
		ShowAddress:  false,
		ShowPhone:    false,
		ShowDate:     true,
		ShowCashier:  false,
		ShowCustomer: true,
		HeaderText:   "Cabang Kemang",
		FooterText:   "Sampai jumpa lagi",
	}
	r := Build(sampleTransaction(), sampleOutlet(), "Sari", "Budi", tpl, sampleConfig(), &CashInfo{Received: 100000, Change: 14500})

	if r.PaperWidthMM != 80 {
		t.Fatalf("expected paper width 80, got %d", r.PaperWidthMM)
	}
	if r.ShowAddress || r.ShowPhone || r.ShowCashier {
		t.Fatalf("template toggles not applied: %+v", r)
	}
	if r.HeaderText != "Cabang Kemang" {
		t.Fatalf("expected template header, got %q", r.HeaderText)
	}
	if r.FooterText != "Sampai jumpa lagi" {
		t.Fatalf("template footer must override config, got %q", r.FooterText)
	}
	if r.Cash == nil || r.Cash.Change != 14500 {
		t.Fatalf("expected cash info on cash sale, got %+v", r.Cash)
	}
}

func TestBuildDefaultsWithoutTemplate(t *testing.T) {
	r := Build(sampleTransaction(), sampleOutlet(), "Sari", "Budi", nil, sampleConfig(), nil)

	if r.PaperWidthMM != 58 {
		t.Fatalf("expected default paper width 58, got %d", r.PaperWidthMM)
	}
	if !r.ShowAddress || !r.ShowPhone || !r.ShowDate || !r.ShowCashier || !r.ShowCustomer {
		t.Fatalf("expected all sections on by default: %+v", r)
	}
	if r.FooterText != "Terima kasih atas kunjungan Anda" {
		t.Fatalf("expected config footer, got %q", r.FooterText)
	}
}

func TestBuildDropsCashInfoForNonCashSale(t *testing.T) {
	tx := sampleTransaction()
	tx.PaymentMethod = enums.PaymentMethodQRIS
	r := Build(tx, sampleOutlet(), "Sari", "Budi", nil, sampleConfig(), &CashInfo{Received: 100000, Change: 14500})
	if r.Cash != nil {
		t.Fatal("cash info must be dropped for non-cash sales")
	}
}

func TestRenderHTMLContainsAllSections(t *testing.T) {
	r := Build(sampleTransaction(), sampleOutlet(), "Sari", "Budi", nil, sampleConfig(), &CashInfo{Received: 100000, Change: 14500})

	html, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}

	for _, want := range []string{
		"CukurID Barbershop",
		"CukurID Kemang",
		"Jl. Kemang Raya No. 8",
		"20260831-0007",
		"Sari",
		"Budi",
		"Pak Dedi",
		"1x Cukur Dewasa",
		"Rp 95.000",
		"Rp 85.500",
		"Rp 100.000",
		"Rp 14.500",
		"Terima kasih atas kunjungan Anda",
		"58mm",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html missing %q", want)
		}
	}
}

func TestRenderHTMLHonorsToggles(t *testing.T) {
	tpl := &models.ReceiptTemplate{
		PaperWidthMM: 58,
		ShowAddress:  false,
		ShowPhone:    false,
		ShowDate:     false,
		ShowCashier:  false,
		ShowCustomer: false,
	}
	r := Build(sampleTransaction(), sampleOutlet(), "Sari", "Budi", tpl, sampleConfig(), nil)

	html, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	for _, hidden := range []string{"Jl. Kemang Raya No. 8", "021-5551234", "Kasir", "Pelanggan", "Tanggal"} {
		if strings.Contains(html, hidden) {
			t.Fatalf("rendered html must hide %q when toggled off", hidden)
		}
	}
}

func TestRenderESCPOSMirrorsHTMLSections(t *testing.T) {
	r := Build(sampleTransaction(), sampleOutlet(), "Sari", "Budi", nil, sampleConfig(), &CashInfo{Received: 100000, Change: 14500})

	raw := RenderESCPOS(r)
	if len(raw) == 0 {
		t.Fatal("expected escpos output")
	}

	for _, want := range []string{
		"CukurID Barbershop",
		"20260831-0007",
		"Cukur Dewasa",
		"Pomade",
		"Rp 85.500",
		"Tunai",
		"Kembali",
		"Terima kasih atas kunjungan Anda",
	} {
		if !bytes.Contains(raw, []byte(want)) {
			t.Fatalf("escpos output missing %q", want)
		}
	}

	// The stream must end with a paper cut command.
	if !bytes.Contains(raw[len(raw)-8:], []byte{0x1D, 'V'}) {
		t.Fatal("expected cut command at end of stream")
	}
}

func TestRenderESCPOSSkipsCashForNonCash(t *testing.T) {
	tx := sampleTransaction()
	tx.PaymentMethod = enums.PaymentMethodCard
	r := Build(tx, sampleOutlet(), "Sari", "Budi", nil, sampleConfig(), nil)

	raw := RenderESCPOS(r)
	if bytes.Contains(raw, []byte("Tunai")) || bytes.Contains(raw, []byte("Kembali")) {
		t.Fatal("non-cash receipt must not print tender lines")
	}
}
