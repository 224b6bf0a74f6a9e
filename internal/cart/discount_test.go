package cart

import (
	"testing"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

func TestApplyDiscountPercentage(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		value    int64
		amount   int64
		total    int64
	}{
		{"ten percent", 50000, 10, 5000, 45000},
		{"rounds half up", 33333, 10, 3333, 30000},
		{"zero percent", 50000, 0, 0, 50000},
		{"clamped above hundred", 50000, 150, 50000, 0},
		{"negative clamped to zero", 50000, -10, 0, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := ApplyDiscount(tc.subtotal, &Discount{Type: enums.DiscountPercentage, Value: tc.value})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if totals.DiscountAmount != tc.amount {
				t.Fatalf("expected discount %d, got %d", tc.amount, totals.DiscountAmount)
			}
			if totals.Total != tc.total {
				t.Fatalf("expected total %d, got %d", tc.total, totals.Total)
			}
		})
	}
}

func TestApplyDiscountFixed(t *testing.T) {
	totals, err := ApplyDiscount(50000, &Discount{Type: enums.DiscountFixed, Value: 20000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Total != 30000 {
		t.Fatalf("expected total 30000, got %d", totals.Total)
	}

	// Fixed discounts never push the total below zero.
	totals, err = ApplyDiscount(50000, &Discount{Type: enums.DiscountFixed, Value: 99000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.DiscountAmount != 50000 || totals.Total != 0 {
		t.Fatalf("expected discount clamped to subtotal, got %+v", totals)
	}
}

func TestApplyDiscountNilLeavesSubtotal(t *testing.T) {
	totals, err := ApplyDiscount(80000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 80000 || totals.DiscountAmount != 0 || totals.Total != 80000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestApplyDiscountRejectsNegativeSubtotal(t *testing.T) {
	if _, err := ApplyDiscount(-1, nil); err == nil {
		t.Fatal("expected validation error")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestApplyCash(t *testing.T) {
	payment, err := ApplyCash(45000, 50000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Change != 5000 {
		t.Fatalf("expected change 5000, got %d", payment.Change)
	}

	payment, err = ApplyCash(45000, 45000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Change != 0 {
		t.Fatalf("expected zero change at exact tender, got %d", payment.Change)
	}
}

func TestApplyCashShortfall(t *testing.T) {
	_, err := ApplyCash(45000, 40000)
	if err == nil {
		t.Fatal("expected shortfall error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]int64)
	if !ok || details["shortfall"] != 5000 {
		t.Fatalf("expected shortfall detail 5000, got %v", typed.Details())
	}
}
