package notifications

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/resend"
)

type stubEmailSender struct {
	sent []resend.Email
	err  error
}

func (s *stubEmailSender) Send(ctx context.Context, email resend.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func newNotificationsService(t *testing.T, sender EmailSender) *Service {
	t.Helper()

	svc, err := NewService(Params{
		Sender: sender,
		Resend: config.ResendConfig{
			FromEmail: "Maison Arlo <orders@maisonarlo.com>",
			OpsEmail:  "inventory@maisonarlo.com",
		},
		Store:  config.StoreConfig{Name: "Maison Arlo", Currency: "PHP"},
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func testOrder() *models.Order {
	return &models.Order{
		OrderNumber:   "ORD-1755246000000",
		CustomerName:  "Ana Reyes",
		CustomerEmail: "ana@example.com",
		TotalPrice:    decimal.RequireFromString("800.00"),
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	sender := &stubEmailSender{}
	svc := newNotificationsService(t, sender)

	svc.SendOrderConfirmation(context.Background(), testOrder())

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "Maison Arlo <orders@maisonarlo.com>", email.From)
	assert.Equal(t, "ana@example.com", email.To)
	assert.Equal(t, "Order Confirmation - ORD-1755246000000", email.Subject)
	assert.Contains(t, email.HTML, "Ana Reyes")
	assert.Contains(t, email.HTML, "ORD-1755246000000")
	assert.Contains(t, email.HTML, "PHP 800.00")
}

func TestSendOrderConfirmation_nilSenderSkips(t *testing.T) {
	svc := newNotificationsService(t, nil)

	svc.SendOrderConfirmation(context.Background(), testOrder())
}

func TestSendOrderConfirmation_sendFailureSwallowed(t *testing.T) {
	sender := &stubEmailSender{err: errors.New("timeout")}
	svc := newNotificationsService(t, sender)

	svc.SendOrderConfirmation(context.Background(), testOrder())
	assert.Empty(t, sender.sent)
}

func TestSendLowStockAlert(t *testing.T) {
	sender := &stubEmailSender{}
	svc := newNotificationsService(t, sender)

	svc.SendLowStockAlert(context.Background(), &models.Perfume{
		ID:                uuid.New(),
		Name:              "Santelmo",
		QuantityAvailable: 4,
	})

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "inventory@maisonarlo.com", email.To)
	assert.Equal(t, "Low Stock Alert: Santelmo", email.Subject)
	assert.Contains(t, email.HTML, "4 left in stock")
}

func TestSendLowStockAlert_nilSenderSkips(t *testing.T) {
	svc := newNotificationsService(t, nil)

	svc.SendLowStockAlert(context.Background(), &models.Perfume{Name: "Santelmo"})
}
