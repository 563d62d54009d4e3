package webhooks

import (
	"context"
	"net/http"

	"github.com/maisonarlo/storefront-backend/api/responses"
	"github.com/maisonarlo/storefront-backend/api/validators"
	paymongowebhook "github.com/maisonarlo/storefront-backend/internal/webhooks/paymongo"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

type PayMongoWebhookService interface {
	HandleEvent(ctx context.Context, event *paymongowebhook.Event) error
}

// PayMongoWebhook receives payment events from the provider. Normal
// completion, including partial success inside the pipeline, acknowledges
// with a 200 so the provider stops retrying; only fatal failures (missing
// configuration, order insert) surface a 5xx.
func PayMongoWebhook(svc PayMongoWebhookService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var event paymongowebhook.Event
		if err := validators.DecodeJSONBody(r, &event); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode webhook event"))
			return
		}

		if svc == nil {
			// A non-payment event triggers no pipeline work; acknowledge it
			// even without a configured store. A paid event must fail so the
			// provider keeps retrying until the store is configured.
			if event.Data.Type != paymongowebhook.EventTypePaymentPaid {
				logg.Info(logg.WithEventID(ctx, event.Data.ID), "pipeline unconfigured, acknowledging non-payment event")
				responses.WriteSuccess(w, nil)
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		if err := svc.HandleEvent(ctx, &event); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
