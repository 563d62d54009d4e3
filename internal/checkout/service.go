package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maisonarlo/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/paymongo"
)

const shippingLineItemName = "Shipping Fee"

var paymentMethodTypes = []string{"card", "gcash", "paymaya"}

// Gateway is the payment-provider surface the service depends on.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params paymongo.CheckoutSessionParams) (*paymongo.CheckoutSession, error)
}

// Service turns a validated cart into a hosted checkout session.
type Service interface {
	CreateSession(ctx context.Context, req SessionRequest, origin string) (*SessionResult, error)
}

// Params carries the dependencies for NewService.
type Params struct {
	Gateway Gateway
	Store   config.StoreConfig
	Logger  *logger.Logger
}

type service struct {
	gateway  Gateway
	currency string
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the checkout service. Gateway and Logger are required.
func NewService(params Params) (Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	currency := params.Store.Currency
	if currency == "" {
		currency = "PHP"
	}
	return &service{
		gateway:  params.Gateway,
		currency: currency,
		logg:     params.Logger,
		now:      time.Now,
	}, nil
}

// CreateSession builds the provider payload from the cart and returns the
// hosted checkout redirect. Items whose price does not resolve to a positive
// minor-unit amount are dropped with a warning rather than poisoning the
// whole session.
func (s *service) CreateSession(ctx context.Context, req SessionRequest, origin string) (*SessionResult, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items in cart")
	}

	lineItems := s.buildLineItems(ctx, req.Items, origin)
	if req.ShippingFee.IsPositive() {
		lineItems = append(lineItems, paymongo.LineItem{
			Name:     shippingLineItemName,
			Amount:   minorUnits(req.ShippingFee),
			Quantity: 1,
			Currency: s.currency,
			Images:   []string{},
		})
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, paymongo.CheckoutSessionParams{
		LineItems:          lineItems,
		PaymentMethodTypes: paymentMethodTypes,
		Currency:           s.currency,
		Billing: paymongo.Billing{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Description:     fmt.Sprintf("Order for %s", req.CustomerName),
		ReferenceNumber: fmt.Sprintf("REF-%d", s.now().UnixMilli()),
		SuccessURL:      origin + "/success",
		CancelURL:       origin + "/",
		Metadata:        s.sessionMetadata(req),
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "session_id", session.ID), "checkout session created")

	return &SessionResult{
		CheckoutURL: session.CheckoutURL,
		SessionID:   session.ID,
	}, nil
}

func (s *service) buildLineItems(ctx context.Context, items []CartItem, origin string) []paymongo.LineItem {
	lineItems := make([]paymongo.LineItem, 0, len(items))
	for _, item := range items {
		name := item.Title
		if name == "" {
			name = item.Name
		}

		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"item_name": name,
				"price":     item.Price,
			}), "dropping cart item with unparseable price")
			continue
		}
		amount := minorUnits(price)
		if amount <= 0 {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"item_name": name,
				"price":     item.Price,
			}), "dropping cart item with non-positive amount")
			continue
		}

		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		images := []string{}
		if image := absoluteImageURL(item.Image, origin); image != "" {
			images = append(images, image)
		}

		lineItems = append(lineItems, paymongo.LineItem{
			Name:     name,
			Amount:   amount,
			Quantity: qty,
			Currency: s.currency,
			Images:   images,
		})
	}
	return lineItems
}

// sessionMetadata rides along on the session and comes back verbatim on the
// payment webhook, where it fills the order's contact and delivery columns.
func (s *service) sessionMetadata(req SessionRequest) map[string]string {
	metadata := map[string]string{
		"customer_phone": req.CustomerPhone,
	}
	if req.DeliveryType != "" {
		metadata["delivery_type"] = req.DeliveryType
	}
	if req.ShippingFee.IsPositive() {
		metadata["shipping_fee"] = req.ShippingFee.StringFixed(2)
	}
	return metadata
}

// minorUnits converts a major-unit decimal price to an integer count of the
// currency's minor unit, rounding halves away from zero.
func minorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// absoluteImageURL prefixes relative image paths with the request origin;
// the provider only accepts publicly resolvable URLs.
func absoluteImageURL(image, origin string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "/") {
		return origin + image
	}
	return image
}
