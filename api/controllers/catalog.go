package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	catalogsvc "github.com/mfadlih/cukurid-backend/internal/catalog"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

// CatalogList returns categories plus items, optionally filtered by type.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var itemType *enums.CatalogItemType
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			parsed, err := enums.ParseCatalogItemType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
				return
			}
			itemType = &parsed
		}

		catalog, err := svc.GetCatalog(r.Context(), itemType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog)
	}
}

func CatalogGetItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

type createItemRequest struct {
	Name            string  `json:"name" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=service product"`
	Price           int64   `json:"price" validate:"required,min=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,min=0"`
	CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

func CatalogCreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemType, err := enums.ParseCatalogItemType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
			return
		}

		input := catalogsvc.CreateItemInput{
			Name:            payload.Name,
			Type:            itemType,
			Price:           payload.Price,
			DurationMinutes: payload.DurationMinutes,
		}
		if payload.CategoryID != nil {
			categoryID, parseErr := uuid.Parse(*payload.CategoryID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

type updateItemRequest struct {
	Name            *string `json:"name,omitempty"`
	Price           *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func CatalogUpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.UpdateItemInput{
			Name:            payload.Name,
			Price:           payload.Price,
			DurationMinutes: payload.DurationMinutes,
			IsActive:        payload.IsActive,
		}
		if payload.CategoryID != nil {
			categoryID, parseErr := uuid.Parse(*payload.CategoryID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CatalogDeactivateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeactivateItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"omitempty,min=0"`
}

func CatalogCreateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), payload.Name, payload.SortOrder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}
