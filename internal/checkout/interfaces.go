package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/internal/commissions"
	"github.com/mfadlih/cukurid-backend/internal/stock"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Store is the checkout-owned persistence surface.
type Store interface {
	WithTx(tx *gorm.DB) Store
	FindOutletByID(ctx context.Context, id uuid.UUID) (*models.Outlet, error)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
}

// StockStore is the slice of stock persistence checkout needs inside its
// transaction.
type StockStore interface {
	WithTx(tx *gorm.DB) StockStore
	FindForItems(ctx context.Context, outletID uuid.UUID, itemIDs []uuid.UUID) ([]models.OutletStock, error)
	Decrement(ctx context.Context, outletID, itemID uuid.UUID, qty int) (bool, error)
}

// RuleStore resolves commission rules during checkout.
type RuleStore interface {
	WithTx(tx *gorm.DB) RuleStore
	FindRules(ctx context.Context, employeeIDs, itemIDs []uuid.UUID) (map[uuid.UUID]map[uuid.UUID]models.CommissionRule, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type storeAdapter struct {
	repo *Repository
}

// NewStore wraps the checkout repository in the tx-bindable Store surface.
func NewStore(repo *Repository) Store {
	return storeAdapter{repo: repo}
}

func (a storeAdapter) WithTx(tx *gorm.DB) Store {
	return storeAdapter{repo: a.repo.WithTx(tx)}
}

func (a storeAdapter) FindOutletByID(ctx context.Context, id uuid.UUID) (*models.Outlet, error) {
	return a.repo.FindOutletByID(ctx, id)
}

func (a storeAdapter) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return a.repo.FindEmployeeByID(ctx, id)
}

func (a storeAdapter) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	return a.repo.InsertTransaction(ctx, tx)
}

type stockAdapter struct {
	repo *stock.Repository
}

// NewStockStore wraps the stock repository in the tx-bindable surface.
func NewStockStore(repo *stock.Repository) StockStore {
	return stockAdapter{repo: repo}
}

func (a stockAdapter) WithTx(tx *gorm.DB) StockStore {
	return stockAdapter{repo: a.repo.WithTx(tx)}
}

func (a stockAdapter) FindForItems(ctx context.Context, outletID uuid.UUID, itemIDs []uuid.UUID) ([]models.OutletStock, error) {
	return a.repo.FindForItems(ctx, outletID, itemIDs)
}

func (a stockAdapter) Decrement(ctx context.Context, outletID, itemID uuid.UUID, qty int) (bool, error) {
	return a.repo.Decrement(ctx, outletID, itemID, qty)
}

type ruleAdapter struct {
	repo *commissions.Repository
}

// NewRuleStore wraps the commissions repository in the tx-bindable surface.
func NewRuleStore(repo *commissions.Repository) RuleStore {
	return ruleAdapter{repo: repo}
}

func (a ruleAdapter) WithTx(tx *gorm.DB) RuleStore {
	return ruleAdapter{repo: a.repo.WithTx(tx)}
}

func (a ruleAdapter) FindRules(ctx context.Context, employeeIDs, itemIDs []uuid.UUID) (map[uuid.UUID]map[uuid.UUID]models.CommissionRule, error) {
	return a.repo.FindRules(ctx, employeeIDs, itemIDs)
}
