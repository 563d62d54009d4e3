package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/metrics"
)

// LowStockThreshold is the remaining-stock level below which an operational
// alert goes out after a sale is applied.
const LowStockThreshold = 5

// ReconcileResult reports the outcome of applying one sold line item to the
// catalog. Matched is false when the item name has no catalog row.
type ReconcileResult struct {
	Matched bool
	Perfume *models.Perfume
}

// lowStockNotifier is the slice of the notification service the reconciler
// needs. Alerts are best effort and never fail a reconcile.
type lowStockNotifier interface {
	SendLowStockAlert(ctx context.Context, perfume *models.Perfume)
}

// Service applies sold quantities to catalog stock and serves the catalog
// listing.
type Service interface {
	ReconcileSale(ctx context.Context, name string, qty int) (ReconcileResult, error)
	ListActive(ctx context.Context) ([]models.Perfume, error)
}

// Params carries the dependencies for NewService.
type Params struct {
	Repo     Repository
	Notifier lowStockNotifier
	Metrics  *metrics.PipelineMetrics
	Logger   *logger.Logger
}

type service struct {
	repo     Repository
	notifier lowStockNotifier
	metrics  *metrics.PipelineMetrics
	logg     *logger.Logger
}

// NewService builds the inventory service. Repo and Logger are required;
// Notifier and Metrics may be nil.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory repository is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{
		repo:     params.Repo,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// ReconcileSale decrements stock for one sold line item. An unknown item
// name is a soft miss: it logs, counts, and returns Matched=false with a nil
// error so the remaining items still reconcile. Quantities below 1 are
// treated as 1.
func (s *service) ReconcileSale(ctx context.Context, name string, qty int) (ReconcileResult, error) {
	if qty <= 0 {
		qty = 1
	}

	perfume, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "item_name", name), "sold item has no catalog match")
			s.metrics.IncMiss()
			return ReconcileResult{Matched: false}, nil
		}
		return ReconcileResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "look up catalog item")
	}

	updated, err := s.repo.DecrementStock(ctx, perfume.ID, qty)
	if err != nil {
		return ReconcileResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
	}
	s.metrics.IncDecrement()

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"perfume_id":         updated.ID.String(),
		"item_name":          updated.Name,
		"quantity_sold":      qty,
		"quantity_available": updated.QuantityAvailable,
	}), "stock decremented")

	if updated.QuantityAvailable < LowStockThreshold {
		s.metrics.IncLowStockAlert()
		if s.notifier != nil {
			s.notifier.SendLowStockAlert(ctx, updated)
		}
	}

	return ReconcileResult{Matched: true, Perfume: updated}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Perfume, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog")
	}
	return rows, nil
}
