package paymongowebhook

import (
	"context"

	"github.com/maisonarlo/storefront-backend/internal/inventory"
	"github.com/maisonarlo/storefront-backend/internal/orders"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/metrics"
)

// EventTypePaymentPaid is the only event type the pipeline acts on; every
// other type is acknowledged and ignored.
const EventTypePaymentPaid = "payment.paid"

// Event is the provider's webhook envelope, reduced to the fields the
// pipeline reads.
type Event struct {
	Data EventData `json:"data"`
}

type EventData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes EventAttributes `json:"attributes"`
}

type EventAttributes struct {
	Amount    int64             `json:"amount"`
	Billing   EventBilling      `json:"billing"`
	LineItems []EventLineItem   `json:"line_items"`
	Metadata  map[string]string `json:"metadata"`
}

type EventBilling struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type EventLineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type inventoryReconciler interface {
	ReconcileSale(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error)
}

type orderRecorder interface {
	RecordPaid(ctx context.Context, params orders.PaidOrderParams) (*models.Order, error)
}

type confirmationSender interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order)
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	Inventory inventoryReconciler
	Recorder  orderRecorder
	Notifier  confirmationSender
	Metrics   *metrics.PipelineMetrics
	Logger    *logger.Logger
}

// Service drives the paid-event pipeline: reconcile stock per line item,
// record the order, then notify the customer.
type Service struct {
	inventory inventoryReconciler
	recorder  orderRecorder
	notifier  confirmationSender
	metrics   *metrics.PipelineMetrics
	logg      *logger.Logger
}

// NewService builds the webhook service. Inventory, Recorder, and Logger are
// required; Notifier and Metrics may be nil.
func NewService(params ServiceParams) (*Service, error) {
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory service is required")
	}
	if params.Recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order recorder is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &Service{
		inventory: params.Inventory,
		recorder:  params.Recorder,
		notifier:  params.Notifier,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// HandleEvent processes one webhook delivery. Non-paid events are a logged
// no-op. Per-item reconcile failures are isolated so one bad line item never
// blocks the rest, and never block the order row. Only an order-insert
// failure is fatal: it propagates so the provider sees a 5xx and retries.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "webhook event is required")
	}

	eventType := event.Data.Type
	s.metrics.IncEvent(eventType)
	ctx = s.logg.WithEventID(ctx, event.Data.ID)

	if eventType != EventTypePaymentPaid {
		s.logg.Info(s.logg.WithField(ctx, "event_type", eventType), "ignoring webhook event")
		return nil
	}

	attrs := event.Data.Attributes
	for _, item := range attrs.LineItems {
		if _, err := s.inventory.ReconcileSale(ctx, item.Name, item.Quantity); err != nil {
			// Stock bookkeeping must not lose a paid order.
			s.logg.Error(s.logg.WithField(ctx, "item_name", item.Name),
				"failed to reconcile line item", err)
		}
	}

	order, err := s.recorder.RecordPaid(ctx, orders.PaidOrderParams{
		ProviderRef:   event.Data.ID,
		Amount:        attrs.Amount,
		CustomerName:  attrs.Billing.Name,
		CustomerEmail: attrs.Billing.Email,
		Metadata:      attrs.Metadata,
		LineItems:     recorderLineItems(attrs.LineItems),
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.SendOrderConfirmation(ctx, order)
	}

	return nil
}

func recorderLineItems(items []EventLineItem) []orders.LineItem {
	if len(items) == 0 {
		return nil
	}
	converted := make([]orders.LineItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, orders.LineItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   item.Amount,
			Currency: item.Currency,
		})
	}
	return converted
}
