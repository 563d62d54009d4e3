package controllers

import (
	"net/http"

	"github.com/maisonarlo/storefront-backend/api/responses"
	"github.com/maisonarlo/storefront-backend/api/validators"
	checkoutsvc "github.com/maisonarlo/storefront-backend/internal/checkout"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

type checkoutSessionResponse struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckoutSession handles the storefront's checkout submission and
// returns the provider's hosted payment redirect.
func CreateCheckoutSession(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutsvc.SessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.CreateSession(ctx, payload, requestOrigin(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, checkoutSessionResponse{
			Success:     true,
			CheckoutURL: result.CheckoutURL,
			SessionID:   result.SessionID,
		})
	}
}

// requestOrigin rebuilds the scheme://host origin of the inbound request so
// redirect and image URLs resolve against the storefront that called us.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
