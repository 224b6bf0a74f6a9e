package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// StockLevelDTO is one outlet stock row with its catalog item snapshot.
type StockLevelDTO struct {
	OutletID          uuid.UUID `json:"outlet_id"`
	CatalogItemID     uuid.UUID `json:"catalog_item_id"`
	ItemName          string    `json:"item_name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLow             bool      `json:"is_low"`
}

// SetStockInput holds the validated payload to set a stock level.
type SetStockInput struct {
	OutletID          uuid.UUID
	CatalogItemID     uuid.UUID
	Quantity          int
	LowStockThreshold *int
}

// Service exposes per-outlet stock management operations.
type Service interface {
	ListOutletStock(ctx context.Context, outletID uuid.UUID) ([]StockLevelDTO, error)
	LowStock(ctx context.Context, outletID uuid.UUID) ([]StockLevelDTO, error)
	SetStock(ctx context.Context, input SetStockInput) (*StockLevelDTO, error)
	Restock(ctx context.Context, outletID, itemID uuid.UUID, qty int) (*StockLevelDTO, error)
}

type itemLoader interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
	FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CatalogItem, error)
}

type service struct {
	repo     *Repository
	itemRepo itemLoader
}

// NewService builds the stock service.
func NewService(repo *Repository, itemRepo itemLoader) Service {
	return &service{repo: repo, itemRepo: itemRepo}
}

func (s *service) ListOutletStock(ctx context.Context, outletID uuid.UUID) ([]StockLevelDTO, error) {
	rows, err := s.repo.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing outlet stock")
	}
	return s.toLevels(ctx, rows)
}

// LowStock returns only the rows at or below their threshold, for the restock
// worklist on the manager dashboard.
func (s *service) LowStock(ctx context.Context, outletID uuid.UUID) ([]StockLevelDTO, error) {
	rows, err := s.repo.ListLowByOutlet(ctx, outletID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing low stock")
	}
	return s.toLevels(ctx, rows)
}

func (s *service) toLevels(ctx context.Context, rows []models.OutletStock) ([]StockLevelDTO, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CatalogItemID)
	}
	items, err := s.itemRepo.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading stock items")
	}
	names := make(map[uuid.UUID]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	levels := make([]StockLevelDTO, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, toStockLevelDTO(row, names[row.CatalogItemID]))
	}
	return levels, nil
}

func (s *service) SetStock(ctx context.Context, input SetStockInput) (*StockLevelDTO, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	item, err := s.itemRepo.FindItemByID(ctx, input.CatalogItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog item")
	}
	if item.Type != enums.CatalogItemProduct {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock is only tracked for products")
	}

	row := &models.OutletStock{
		OutletID:      input.OutletID,
		CatalogItemID: input.CatalogItemID,
		Quantity:      input.Quantity,
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold must not be negative")
		}
		row.LowStockThreshold = *input.LowStockThreshold
	} else if existing, findErr := s.repo.Find(ctx, input.OutletID, input.CatalogItemID); findErr == nil {
		row.LowStockThreshold = existing.LowStockThreshold
	} else {
		row.LowStockThreshold = 5
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving stock level")
	}

	dto := toStockLevelDTO(*row, item.Name)
	return &dto, nil
}

func (s *service) Restock(ctx context.Context, outletID, itemID uuid.UUID, qty int) (*StockLevelDTO, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}

	if _, err := s.repo.Find(ctx, outletID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found for outlet")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading stock row")
	}

	if err := s.repo.Increment(ctx, outletID, itemID, qty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing stock")
	}

	row, err := s.repo.Find(ctx, outletID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading stock row")
	}

	name := ""
	if item, itemErr := s.itemRepo.FindItemByID(ctx, itemID); itemErr == nil {
		name = item.Name
	}
	dto := toStockLevelDTO(*row, name)
	return &dto, nil
}

func toStockLevelDTO(row models.OutletStock, itemName string) StockLevelDTO {
	return StockLevelDTO{
		OutletID:          row.OutletID,
		CatalogItemID:     row.CatalogItemID,
		ItemName:          itemName,
		Quantity:          row.Quantity,
		LowStockThreshold: row.LowStockThreshold,
		IsLow:             row.Quantity <= row.LowStockThreshold,
	}
}
