package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/internal/cart"
	"github.com/mfadlih/cukurid-backend/internal/commissions"
	"github.com/mfadlih/cukurid-backend/pkg/db"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
	"github.com/mfadlih/cukurid-backend/pkg/metrics"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
	"github.com/mfadlih/cukurid-backend/pkg/outbox/payloads"
)

// Input captures everything the till submits for one checkout.
type Input struct {
	OutletID          uuid.UUID
	CashierID         uuid.UUID
	ServingEmployeeID uuid.UUID
	CustomerName      *string
	Cart              cart.Cart
	Discount          *cart.Discount
	PaymentMethod     enums.PaymentMethod
	CashReceived      *int64
	Actor             *outbox.ActorRef
}

// Result is the completed checkout returned for receipt rendering. Change is
// present for cash sales only and is never persisted.
type Result struct {
	Transaction *models.Transaction
	BarberName  string
	CashierName string
	Change      *int64
}

// Service executes the checkout orchestration.
type Service interface {
	Execute(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	tx      txRunner
	store   Store
	stock   StockStore
	rules   RuleStore
	numbers NumberSource
	outbox  outboxPublisher
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
	now     func() time.Time
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	store Store,
	stockStore StockStore,
	ruleStore RuleStore,
	numbers NumberSource,
	publisher outboxPublisher,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("checkout store required")
	}
	if stockStore == nil {
		return nil, fmt.Errorf("stock store required")
	}
	if ruleStore == nil {
		return nil, fmt.Errorf("rule store required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("receipt number source required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:      tx,
		store:   store,
		stock:   stockStore,
		rules:   ruleStore,
		numbers: numbers,
		outbox:  publisher,
		logg:    logg,
		metrics: checkoutMetrics,
		now:     time.Now,
	}, nil
}

// Execute runs the full checkout pipeline. Every write happens inside one
// database transaction: a failure at any phase rolls back all of them.
func (s *service) Execute(ctx context.Context, input Input) (*Result, error) {
	started := s.now()
	result, err := s.execute(ctx, input)
	s.metrics.ObserveDuration(input.OutletID.String(), s.now().Sub(started))
	if err != nil {
		code := string(pkgerrors.CodeInternal)
		if appErr := pkgerrors.As(err); appErr != nil {
			code = string(appErr.Code())
		}
		s.metrics.IncFailed(input.OutletID.String(), code)
		return nil, err
	}
	s.metrics.IncCompleted(input.OutletID.String(), string(input.PaymentMethod))
	return result, nil
}

func (s *service) execute(ctx context.Context, input Input) (*Result, error) {
	// Validating
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	subtotal := input.Cart.Subtotal()
	totals, err := cart.ApplyDiscount(subtotal, input.Discount)
	if err != nil {
		return nil, err
	}

	var change *int64
	if input.PaymentMethod == enums.PaymentMethodCash {
		if input.CashReceived == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cash received is required for cash payments")
		}
		payment, cashErr := cart.ApplyCash(totals.Total, *input.CashReceived)
		if cashErr != nil {
			return nil, cashErr
		}
		change = &payment.Change
	}

	barber, err := s.store.FindEmployeeByID(ctx, input.ServingEmployeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading serving employee")
	}
	cashier, err := s.store.FindEmployeeByID(ctx, input.CashierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cashier")
	}

	var transaction *models.Transaction
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)
		stockStore := s.stock.WithTx(tx)
		ruleStore := s.rules.WithTx(tx)

		// Stock is re-checked inside the transaction: the cart snapshot may
		// be stale by the time the cashier confirms.
		quantities := input.Cart.ProductQuantities()
		productIDs := make([]uuid.UUID, 0, len(quantities))
		for id := range quantities {
			productIDs = append(productIDs, id)
		}
		rows, stockErr := stockStore.FindForItems(ctx, input.OutletID, productIDs)
		if stockErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, stockErr, "loading stock")
		}
		available := make(map[uuid.UUID]int, len(rows))
		for _, row := range rows {
			available[row.CatalogItemID] = row.Quantity
		}
		if checkErr := input.Cart.ValidateStock(available); checkErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, checkErr, "insufficient stock").
				WithDetails(cart.StockViolations(checkErr))
		}

		// Persisting
		receiptNumber, numErr := s.numbers.Next(ctx, input.OutletID, s.now())
		if numErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, numErr, "issuing receipt number")
		}

		items, itemErr := s.buildItems(ctx, ruleStore, input)
		if itemErr != nil {
			return itemErr
		}

		row := &models.Transaction{
			ReceiptNumber:     receiptNumber,
			OutletID:          input.OutletID,
			CashierID:         input.CashierID,
			ServingEmployeeID: input.ServingEmployeeID,
			CustomerName:      input.CustomerName,
			Subtotal:          totals.Subtotal,
			DiscountAmount:    totals.DiscountAmount,
			Total:             totals.Total,
			PaymentMethod:     input.PaymentMethod,
			Items:             items,
		}
		if input.Discount != nil {
			discountType := input.Discount.Type
			row.DiscountType = &discountType
			row.DiscountValue = input.Discount.Value
		}
		if insertErr := store.InsertTransaction(ctx, row); insertErr != nil {
			// A duplicate receipt number means the Redis counter drifted; the
			// till should retry rather than treat this as a server fault.
			if db.IsUniqueViolation(insertErr, "ux_transactions_receipt_number") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, insertErr, "receipt number already used")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, insertErr, "persisting transaction")
		}

		// StockReduction: conditional decrements guard against concurrent
		// sales that slipped past the re-check above.
		for itemID, qty := range quantities {
			ok, decErr := stockStore.Decrement(ctx, input.OutletID, itemID, qty)
			if decErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, decErr, "reducing stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "stock changed during checkout").
					WithDetails(cart.StockViolations(input.Cart.ValidateStock(available)))
			}
		}

		names := make(map[uuid.UUID]string, len(input.Cart.Lines))
		for _, line := range input.Cart.Lines {
			names[line.CatalogItemID] = line.Name
		}
		if lowErr := s.emitLowStock(ctx, tx, stockStore, input.OutletID, productIDs, names, input.Actor); lowErr != nil {
			return lowErr
		}

		// Completed
		event := outbox.DomainEvent{
			EventType:     enums.EventTransactionCreated,
			AggregateType: enums.AggregateTransaction,
			AggregateID:   row.ID,
			Actor:         input.Actor,
			Version:       1,
			Data: payloads.TransactionCreatedEvent{
				TransactionID: row.ID,
				OutletID:      row.OutletID,
				ReceiptNumber: row.ReceiptNumber,
				Total:         row.Total,
				PaymentMethod: row.PaymentMethod,
				ItemCount:     len(row.Items),
			},
		}
		if emitErr := s.outbox.Emit(ctx, tx, event); emitErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, emitErr, "queueing transaction event")
		}

		transaction = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"transaction_id": transaction.ID.String(),
			"receipt_number": transaction.ReceiptNumber,
			"total":          transaction.Total,
		})
		s.logg.Info(logCtx, "checkout completed")
	}

	return &Result{
		Transaction: transaction,
		BarberName:  barber.FullName,
		CashierName: cashier.FullName,
		Change:      change,
	}, nil
}

func (s *service) validate(ctx context.Context, input *Input) error {
	if input.Cart.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.OutletID == uuid.Nil || input.CashierID == uuid.Nil || input.ServingEmployeeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "outlet, cashier, and serving employee are required")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	outlet, err := s.store.FindOutletByID(ctx, input.OutletID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "outlet not found")
	}
	if !outlet.IsActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "outlet is inactive")
	}
	return nil
}

// buildItems snapshots each cart line and resolves its commission.
func (s *service) buildItems(ctx context.Context, ruleStore RuleStore, input Input) ([]models.TransactionItem, error) {
	serviceItemIDs := make([]uuid.UUID, 0, len(input.Cart.Lines))
	employeeIDs := map[uuid.UUID]bool{}
	for _, line := range input.Cart.Lines {
		if line.Type != enums.CatalogItemService {
			continue
		}
		serviceItemIDs = append(serviceItemIDs, line.CatalogItemID)
		employeeIDs[s.servingEmployeeFor(line, input)] = true
	}
	employeeList := make([]uuid.UUID, 0, len(employeeIDs))
	for id := range employeeIDs {
		employeeList = append(employeeList, id)
	}

	rules, err := ruleStore.FindRules(ctx, employeeList, serviceItemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading commission rules")
	}

	items := make([]models.TransactionItem, 0, len(input.Cart.Lines))
	for _, line := range input.Cart.Lines {
		servingID := s.servingEmployeeFor(line, input)

		var rule *models.CommissionRule
		if byItem, ok := rules[servingID]; ok {
			if found, ok := byItem[line.CatalogItemID]; ok {
				rule = &found
			}
		}
		resolution := commissions.Resolve(line.Type, rule, line.LineTotal(), line.Quantity)

		item := models.TransactionItem{
			CatalogItemID:    line.CatalogItemID,
			Name:             line.Name,
			Type:             line.Type,
			UnitPrice:        line.UnitPrice,
			Qty:              line.Quantity,
			LineTotal:        line.LineTotal(),
			CommissionStatus: resolution.Status,
			CommissionType:   resolution.Type,
			CommissionValue:  resolution.Value,
			CommissionAmount: resolution.Amount,
		}
		if line.Type == enums.CatalogItemService {
			serving := servingID
			item.ServingEmployeeID = &serving
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) servingEmployeeFor(line cart.Line, input Input) uuid.UUID {
	if line.ServingEmployeeID != nil {
		return *line.ServingEmployeeID
	}
	return input.ServingEmployeeID
}

// emitLowStock queues a stock_low event for every product that this checkout
// dropped to or below its threshold.
func (s *service) emitLowStock(ctx context.Context, tx *gorm.DB, stockStore StockStore, outletID uuid.UUID, productIDs []uuid.UUID, names map[uuid.UUID]string, actor *outbox.ActorRef) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows, err := stockStore.FindForItems(ctx, outletID, productIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading stock")
	}
	for _, row := range rows {
		if row.Quantity > row.LowStockThreshold {
			continue
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventStockLow,
			AggregateType: enums.AggregateStock,
			AggregateID:   row.CatalogItemID,
			Actor:         actor,
			Version:       1,
			Data: payloads.StockLowEvent{
				OutletID:      row.OutletID,
				CatalogItemID: row.CatalogItemID,
				ItemName:      names[row.CatalogItemID],
				Quantity:      row.Quantity,
				Threshold:     row.LowStockThreshold,
				ObservedAt:    s.now(),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queueing stock event")
		}
	}
	return nil
}
