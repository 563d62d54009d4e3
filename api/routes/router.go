package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonarlo/storefront-backend/api/controllers"
	webhookcontrollers "github.com/maisonarlo/storefront-backend/api/controllers/webhooks"
	"github.com/maisonarlo/storefront-backend/api/middleware"
	checkoutsvc "github.com/maisonarlo/storefront-backend/internal/checkout"
	"github.com/maisonarlo/storefront-backend/internal/inventory"
	paymongowebhook "github.com/maisonarlo/storefront-backend/internal/webhooks/paymongo"
	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

// NewRouter wires the HTTP surface. Services may be nil when their
// configuration is missing; the affected endpoints then report the
// configuration error instead of the whole API failing to boot.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	inventoryService inventory.Service,
	checkoutService checkoutsvc.Service,
	webhookService *paymongowebhook.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// A nil *Service must stay a nil interface so the controller's guard
	// catches it.
	var webhookSvc webhookcontrollers.PayMongoWebhookService
	if webhookService != nil {
		webhookSvc = webhookService
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(inventoryService, logg))
		r.Post("/create-checkout", controllers.CreateCheckoutSession(checkoutService, logg))
		r.Post("/paymongo-webhook", webhookcontrollers.PayMongoWebhook(webhookSvc, logg))
	})

	return r
}
