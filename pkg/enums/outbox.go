package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateTransaction OutboxAggregateType = "transaction"
	AggregateExpense     OutboxAggregateType = "expense"
	AggregateStock       OutboxAggregateType = "outlet_stock"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateTransaction,
	AggregateExpense,
	AggregateStock,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres. The set is closed so
// every open POS view knows exactly which notifications exist.
type OutboxEventType string

const (
	EventTransactionCreated OutboxEventType = "transaction_created"
	EventTransactionUpdated OutboxEventType = "transaction_updated"
	EventTransactionDeleted OutboxEventType = "transaction_deleted"
	EventExpenseUpdated     OutboxEventType = "expense_updated"
	EventExpenseDeleted     OutboxEventType = "expense_deleted"
	EventStockLow           OutboxEventType = "stock_low"
)

var validOutboxEventTypes = []OutboxEventType{
	EventTransactionCreated,
	EventTransactionUpdated,
	EventTransactionDeleted,
	EventExpenseUpdated,
	EventExpenseDeleted,
	EventStockLow,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
