package catalog

import (
	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// ItemDTO is the catalog item projection returned to POS clients.
type ItemDTO struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Type            enums.CatalogItemType `json:"type"`
	Price           int64                 `json:"price"`
	DurationMinutes int                   `json:"duration_minutes,omitempty"`
	CategoryID      *uuid.UUID            `json:"category_id,omitempty"`
	CategoryName    string                `json:"category_name,omitempty"`
	IsActive        bool                  `json:"is_active"`
}

// CategoryDTO is a service category with its position in the POS grid.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
}

// CatalogDTO groups categories and items for a single fetch by the till.
type CatalogDTO struct {
	Categories []CategoryDTO `json:"categories"`
	Items      []ItemDTO     `json:"items"`
}

func toItemDTO(item models.CatalogItem) ItemDTO {
	dto := ItemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Type:            item.Type,
		Price:           item.Price,
		DurationMinutes: item.DurationMinutes,
		CategoryID:      item.CategoryID,
		IsActive:        item.IsActive,
	}
	if item.Category != nil {
		dto.CategoryName = item.Category.Name
	}
	return dto
}

func toCategoryDTO(category models.ServiceCategory) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		SortOrder: category.SortOrder,
	}
}
