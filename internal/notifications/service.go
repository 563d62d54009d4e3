package notifications

import (
	"context"
	"fmt"

	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/resend"
)

// EmailSender is the outbound email surface the service depends on.
type EmailSender interface {
	Send(ctx context.Context, email resend.Email) error
}

// Service dispatches transactional email. Every send is fire-and-log: a
// notification failure must never disturb the pipeline step that asked for
// it, so errors are swallowed after logging. A nil sender (no API key
// configured) logs a warning and skips the call entirely.
type Service struct {
	sender    EmailSender
	fromEmail string
	opsEmail  string
	storeName string
	currency  string
	logg      *logger.Logger
}

// Params carries the dependencies for NewService. Sender may be nil when no
// email credentials were configured.
type Params struct {
	Sender EmailSender
	Resend config.ResendConfig
	Store  config.StoreConfig
	Logger *logger.Logger
}

func NewService(params Params) (*Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &Service{
		sender:    params.Sender,
		fromEmail: params.Resend.FromEmail,
		opsEmail:  params.Resend.OpsEmail,
		storeName: params.Store.Name,
		currency:  params.Store.Currency,
		logg:      params.Logger,
	}, nil
}

// SendOrderConfirmation emails the customer a receipt for a recorded order.
func (s *Service) SendOrderConfirmation(ctx context.Context, order *models.Order) {
	if order == nil || order.CustomerEmail == "" {
		return
	}
	if s.sender == nil {
		s.logg.Warn(ctx, "email api key not configured, skipping order confirmation")
		return
	}

	email := resend.Email{
		From:    s.fromEmail,
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Order Confirmation - %s", order.OrderNumber),
		HTML:    s.confirmationBody(order),
	}
	if err := s.sender.Send(ctx, email); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "order_number", order.OrderNumber),
			"failed to send order confirmation", err)
		return
	}
	s.logg.Info(s.logg.WithField(ctx, "order_number", order.OrderNumber), "order confirmation sent")
}

// SendLowStockAlert emails the operations sink when a sale leaves a catalog
// row below the restock threshold.
func (s *Service) SendLowStockAlert(ctx context.Context, perfume *models.Perfume) {
	if perfume == nil {
		return
	}
	if s.sender == nil {
		s.logg.Warn(ctx, "email api key not configured, skipping low stock alert")
		return
	}

	email := resend.Email{
		From:    s.fromEmail,
		To:      s.opsEmail,
		Subject: fmt.Sprintf("Low Stock Alert: %s", perfume.Name),
		HTML: fmt.Sprintf(
			`<p><strong>%s</strong> is running low: %d left in stock.</p><p>Restock soon to avoid overselling.</p>`,
			perfume.Name, perfume.QuantityAvailable),
	}
	if err := s.sender.Send(ctx, email); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "perfume_id", perfume.ID.String()),
			"failed to send low stock alert", err)
		return
	}
	s.logg.Info(s.logg.WithField(ctx, "perfume_id", perfume.ID.String()), "low stock alert sent")
}

func (s *Service) confirmationBody(order *models.Order) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Thank you for your order!</h1>
  <p>Hi %s,</p>
  <p>We've received your order <strong>%s</strong>.</p>
  <p style="font-size: 18px; font-weight: bold;">Total: %s %s</p>
  <p>We'll process and ship your order within 24 hours.</p>
  <hr style="border: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 14px;">%s</p>
</div>`,
		order.CustomerName, order.OrderNumber, s.currency, order.TotalPrice.StringFixed(2), s.storeName)
}
