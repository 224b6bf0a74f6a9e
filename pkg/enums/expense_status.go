package enums

import "fmt"

// ExpenseStatus is the approval state of a submitted expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

var validExpenseStatuses = []ExpenseStatus{
	ExpensePending,
	ExpenseApproved,
	ExpenseRejected,
}

// IsValid reports whether the value is a known ExpenseStatus.
func (s ExpenseStatus) IsValid() bool {
	for _, candidate := range validExpenseStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseExpenseStatus converts raw input into an ExpenseStatus.
func ParseExpenseStatus(value string) (ExpenseStatus, error) {
	for _, candidate := range validExpenseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense status %q", value)
}
