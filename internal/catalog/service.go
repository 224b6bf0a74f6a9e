package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// Service exposes catalog browsing and admin management operations.
type Service interface {
	GetCatalog(ctx context.Context, itemType *enums.CatalogItemType) (*CatalogDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeactivateItem(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, name string, sortOrder int) (*CategoryDTO, error)
}

// CreateItemInput holds the validated payload to create a catalog item.
type CreateItemInput struct {
	Name            string
	Type            enums.CatalogItemType
	Price           int64
	DurationMinutes int
	CategoryID      *uuid.UUID
}

// UpdateItemInput holds optional mutation values for a catalog item.
type UpdateItemInput struct {
	Name            *string
	Price           *int64
	DurationMinutes *int
	CategoryID      *uuid.UUID
	IsActive        *bool
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCatalog(ctx context.Context, itemType *enums.CatalogItemType) (*CatalogDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	items, err := s.repo.ListActiveItems(ctx, itemType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing catalog items")
	}

	dto := &CatalogDTO{
		Categories: make([]CategoryDTO, 0, len(categories)),
		Items:      make([]ItemDTO, 0, len(items)),
	}
	for _, c := range categories {
		dto.Categories = append(dto.Categories, toCategoryDTO(c))
	}
	for _, item := range items {
		dto.Items = append(dto.Items, toItemDTO(item))
	}
	return dto, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog item")
	}
	dto := toItemDTO(*item)
	return &dto, nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Type == enums.CatalogItemProduct && input.DurationMinutes != 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products do not have a duration")
	}

	item := &models.CatalogItem{
		Name:            name,
		Type:            input.Type,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		CategoryID:      input.CategoryID,
		IsActive:        true,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating catalog item")
	}
	dto := toItemDTO(*created)
	return &dto, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog item")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		item.Name = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.DurationMinutes != nil {
		item.DurationMinutes = *input.DurationMinutes
	}
	if input.CategoryID != nil {
		item.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating catalog item")
	}
	dto := toItemDTO(*updated)
	return &dto, nil
}

func (s *service) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindItemByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog item")
	}
	if err := s.repo.DeactivateItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating catalog item")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, name string, sortOrder int) (*CategoryDTO, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category := &models.ServiceCategory{Name: trimmed, SortOrder: sortOrder}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	dto := toCategoryDTO(*created)
	return &dto, nil
}
