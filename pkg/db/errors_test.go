package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgxDriver(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "ux_transactions_receipt_number"}

	if !IsUniqueViolation(dup, "") {
		t.Fatal("expected unscoped match on pgx duplicate")
	}
	if !IsUniqueViolation(dup, "ux_transactions_receipt_number") {
		t.Fatal("expected match on the violated constraint")
	}
	if IsUniqueViolation(dup, "ux_commission_rules_employee_item") {
		t.Fatal("must not match a different constraint")
	}

	// Other SQLSTATEs never count, even when the constraint name lines up.
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "ux_transactions_receipt_number"}
	if IsUniqueViolation(fk, "ux_transactions_receipt_number") {
		t.Fatal("foreign key violation misread as unique violation")
	}
}

func TestIsUniqueViolationWrappedAndPq(t *testing.T) {
	wrapped := fmt.Errorf("persisting transaction: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "ux_transactions_receipt_number",
	})
	if !IsUniqueViolation(wrapped, "ux_transactions_receipt_number") {
		t.Fatal("expected match through the wrap chain")
	}

	pqDup := &pq.Error{Code: "23505", Constraint: "ux_transactions_receipt_number"}
	if !IsUniqueViolation(pqDup, "ux_transactions_receipt_number") {
		t.Fatal("expected match on lib/pq duplicate")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is never a violation")
	}

	plain := errors.New(`duplicate key value violates unique constraint "ux_transactions_receipt_number"`)
	if !IsUniqueViolation(plain, "") {
		t.Fatal("expected fallback match on duplicate key message")
	}
	if !IsUniqueViolation(plain, "ux_transactions_receipt_number") {
		t.Fatal("expected fallback match on constraint name")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error misread as unique violation")
	}
}
