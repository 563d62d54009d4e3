package controllers

import (
	"net/http"

	"github.com/maisonarlo/storefront-backend/api/responses"
	"github.com/maisonarlo/storefront-backend/internal/inventory"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

// ListProducts serves the active catalog for the storefront grid.
func ListProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListActive(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
