package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/middleware"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/outbox"
)

func urlParamUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"param": key})
	}
	return id, nil
}

// employeeFromContext returns the authenticated employee's id or an
// UNAUTHORIZED error when the context carries none.
func employeeFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.EmployeeIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "employee context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid employee context")
	}
	return id, nil
}

// actorFromContext builds the outbox actor reference from request context.
func actorFromContext(ctx context.Context) *outbox.ActorRef {
	raw := middleware.EmployeeIDFromContext(ctx)
	if raw == "" {
		return nil
	}
	employeeID, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	actor := &outbox.ActorRef{
		EmployeeID: employeeID,
		Role:       middleware.RoleFromContext(ctx),
	}
	if rawOutlet := middleware.OutletIDFromContext(ctx); rawOutlet != "" {
		if outletID, err := uuid.Parse(rawOutlet); err == nil {
			actor.OutletID = &outletID
		}
	}
	return actor
}
