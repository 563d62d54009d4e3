package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/maisonarlo/storefront-backend/internal/inventory"
	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubInventoryService struct{}

func (stubInventoryService) ReconcileSale(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error) {
	return inventory.ReconcileResult{}, nil
}

func (stubInventoryService) ListActive(ctx context.Context) ([]models.Perfume, error) {
	return []models.Perfume{{Name: "Santelmo"}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(cfg, logg, stubPinger{}, stubInventoryService{}, nil, nil, prometheus.NewRegistry())
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Maison-Env"))
}

func TestRouterHealthReady(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestRouterProducts(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Santelmo")
}

func TestRouterWebhookRejectsNonPost(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/paymongo-webhook", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterNilCheckoutServiceIs500(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/create-checkout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouterNilWebhookServicePaidEventIs500(t *testing.T) {
	router := newTestRouter(t)

	body := `{"data":{"id":"evt_1","type":"payment.paid","attributes":{"amount":80000}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/paymongo-webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouterNilWebhookServiceAcknowledgesNonPaidEvent(t *testing.T) {
	router := newTestRouter(t)

	body := `{"data":{"id":"evt_2","type":"payment.failed","attributes":{"amount":80000}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/paymongo-webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRouterMetrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
