package paymongowebhook

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonarlo/storefront-backend/internal/inventory"
	"github.com/maisonarlo/storefront-backend/internal/orders"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

type reconcileCall struct {
	name string
	qty  int
}

type stubReconciler struct {
	calls     []reconcileCall
	reconcile func(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error)
}

func (s *stubReconciler) ReconcileSale(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error) {
	s.calls = append(s.calls, reconcileCall{name: name, qty: qty})
	if s.reconcile != nil {
		return s.reconcile(ctx, name, qty)
	}
	return inventory.ReconcileResult{Matched: true}, nil
}

type stubRecorder struct {
	params     *orders.PaidOrderParams
	recordPaid func(ctx context.Context, params orders.PaidOrderParams) (*models.Order, error)
}

func (s *stubRecorder) RecordPaid(ctx context.Context, params orders.PaidOrderParams) (*models.Order, error) {
	s.params = &params
	if s.recordPaid != nil {
		return s.recordPaid(ctx, params)
	}
	return &models.Order{OrderNumber: "ORD-1", CustomerEmail: params.CustomerEmail}, nil
}

type stubConfirmationSender struct {
	sent []*models.Order
}

func (s *stubConfirmationSender) SendOrderConfirmation(ctx context.Context, order *models.Order) {
	s.sent = append(s.sent, order)
}

func newWebhookService(t *testing.T, rec *stubReconciler, ord *stubRecorder, notifier confirmationSender) *Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Inventory: rec,
		Recorder:  ord,
		Notifier:  notifier,
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func paidEvent() *Event {
	return &Event{Data: EventData{
		ID:   "evt_123",
		Type: EventTypePaymentPaid,
		Attributes: EventAttributes{
			Amount:  80000,
			Billing: EventBilling{Name: "A", Email: "a@b.com"},
			LineItems: []EventLineItem{
				{Name: "Santelmo", Quantity: 2},
			},
			Metadata: map[string]string{"delivery_type": "courier"},
		},
	}}
}

func TestHandleEvent_paid(t *testing.T) {
	rec := &stubReconciler{}
	ord := &stubRecorder{}
	notifier := &stubConfirmationSender{}
	svc := newWebhookService(t, rec, ord, notifier)

	err := svc.HandleEvent(context.Background(), paidEvent())
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "Santelmo", rec.calls[0].name)
	assert.Equal(t, 2, rec.calls[0].qty)

	require.NotNil(t, ord.params)
	assert.Equal(t, "evt_123", ord.params.ProviderRef)
	assert.Equal(t, int64(80000), ord.params.Amount)
	assert.Equal(t, "A", ord.params.CustomerName)
	assert.Equal(t, "a@b.com", ord.params.CustomerEmail)
	assert.Equal(t, "courier", ord.params.Metadata["delivery_type"])
	require.Len(t, ord.params.LineItems, 1)
	assert.Equal(t, "Santelmo", ord.params.LineItems[0].Name)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ORD-1", notifier.sent[0].OrderNumber)
}

func TestHandleEvent_ignoresOtherTypes(t *testing.T) {
	rec := &stubReconciler{}
	ord := &stubRecorder{}
	svc := newWebhookService(t, rec, ord, nil)

	event := paidEvent()
	event.Data.Type = "payment.failed"

	err := svc.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, rec.calls)
	assert.Nil(t, ord.params)
}

func TestHandleEvent_reconcileFailureIsolated(t *testing.T) {
	rec := &stubReconciler{
		reconcile: func(ctx context.Context, name string, qty int) (inventory.ReconcileResult, error) {
			if name == "Santelmo" {
				return inventory.ReconcileResult{}, pkgerrors.New(pkgerrors.CodeInternal, "db down")
			}
			return inventory.ReconcileResult{Matched: true}, nil
		},
	}
	ord := &stubRecorder{}
	notifier := &stubConfirmationSender{}
	svc := newWebhookService(t, rec, ord, notifier)

	event := paidEvent()
	event.Data.Attributes.LineItems = []EventLineItem{
		{Name: "Santelmo", Quantity: 2},
		{Name: "Aurora", Quantity: 1},
	}

	err := svc.HandleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	require.NotNil(t, ord.params)
	require.Len(t, notifier.sent, 1)
}

func TestHandleEvent_orderInsertFailureIsFatal(t *testing.T) {
	rec := &stubReconciler{}
	ord := &stubRecorder{
		recordPaid: func(ctx context.Context, params orders.PaidOrderParams) (*models.Order, error) {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "insert order: connection refused")
		},
	}
	notifier := &stubConfirmationSender{}
	svc := newWebhookService(t, rec, ord, notifier)

	err := svc.HandleEvent(context.Background(), paidEvent())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
	assert.Empty(t, notifier.sent)
}

func TestHandleEvent_nilEvent(t *testing.T) {
	svc := newWebhookService(t, &stubReconciler{}, &stubRecorder{}, nil)

	err := svc.HandleEvent(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}
