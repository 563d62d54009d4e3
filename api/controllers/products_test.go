package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maisonarlo/storefront-backend/internal/inventory"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
)

type stubInventoryService struct {
	rows []models.Perfume
	err  error
}

func (s *stubInventoryService) ReconcileSale(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error) {
	return inventory.ReconcileResult{}, nil
}

func (s *stubInventoryService) ListActive(ctx context.Context) ([]models.Perfume, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestListProducts(t *testing.T) {
	svc := &stubInventoryService{rows: []models.Perfume{{Name: "Santelmo", QuantityAvailable: 8}}}
	handler := ListProducts(svc, testControllersLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Santelmo")
}

func TestListProducts_nilService(t *testing.T) {
	handler := ListProducts(nil, testControllersLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListProducts_repoError(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeInternal, "list catalog")}
	handler := ListProducts(svc, testControllersLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
