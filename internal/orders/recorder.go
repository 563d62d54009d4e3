package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maisonarlo/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/metrics"
)

const (
	orderNumberPrefix = "ORD-"

	// deliveryLocationNote points back-office staff at the provider's
	// checkout record, which holds the shipping address collected on the
	// hosted payment page.
	deliveryLocationNote = "See PayMongo details"

	defaultDeliveryType = "office_pickup"
)

// LineItem is the per-item detail carried from the payment event into the
// order's notes column.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// PaidOrderParams describes one confirmed payment to record. Amount is in
// minor currency units as reported by the provider.
type PaidOrderParams struct {
	ProviderRef   string
	Amount        int64
	CustomerName  string
	CustomerEmail string
	Metadata      map[string]string
	LineItems     []LineItem
}

// Recorder turns confirmed payments into durable order rows.
type Recorder interface {
	RecordPaid(ctx context.Context, params PaidOrderParams) (*models.Order, error)
}

// Params carries the dependencies for NewRecorder.
type Params struct {
	Repo    Repository
	Metrics *metrics.PipelineMetrics
	Logger  *logger.Logger
}

type recorder struct {
	repo    Repository
	metrics *metrics.PipelineMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewRecorder builds the order recorder. Repo and Logger are required.
func NewRecorder(params Params) (Recorder, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &recorder{
		repo:    params.Repo,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     time.Now,
	}, nil
}

// RecordPaid writes exactly one order row for a paid event. Failure here is
// fatal to webhook handling: a paid transaction with no order row is silent
// data loss, and the provider retries on a 5xx.
func (r *recorder) RecordPaid(ctx context.Context, params PaidOrderParams) (*models.Order, error) {
	orderNumber := fmt.Sprintf("%s%d", orderNumberPrefix, r.now().UnixMilli())
	total := decimal.New(params.Amount, -2)

	order := &models.Order{
		OrderNumber:      orderNumber,
		CustomerName:     params.CustomerName,
		CustomerEmail:    params.CustomerEmail,
		CustomerPhone:    params.Metadata["customer_phone"],
		QuantityOrdered:  totalQuantity(params.LineItems),
		Subtotal:         total,
		ShippingFee:      shippingFee(params.Metadata),
		TotalPrice:       total,
		DeliveryLocation: deliveryLocationNote,
		DeliveryType:     deliveryType(params.Metadata),
		PaymentStatus:    "paid",
		OrderStatus:      "pending",
		ProviderRef:      params.ProviderRef,
		Notes:            serializeLineItems(params.LineItems),
	}

	created, err := r.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order")
	}
	r.metrics.IncOrderRecorded()

	r.logg.Info(r.logg.WithFields(ctx, map[string]any{
		"order_number": created.OrderNumber,
		"total_price":  created.TotalPrice.String(),
		"provider_ref": created.ProviderRef,
	}), "order recorded")

	return created, nil
}

// totalQuantity sums line-item quantities, counting unspecified or invalid
// quantities as 1. An event with no line items still records one unit.
func totalQuantity(items []LineItem) int {
	if len(items) == 0 {
		return 1
	}
	total := 0
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += qty
	}
	return total
}

func shippingFee(metadata map[string]string) decimal.Decimal {
	raw, ok := metadata["shipping_fee"]
	if !ok || raw == "" {
		return decimal.Zero
	}
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return fee
}

func deliveryType(metadata map[string]string) string {
	if dt := metadata["delivery_type"]; dt != "" {
		return dt
	}
	return defaultDeliveryType
}

func serializeLineItems(items []LineItem) *string {
	if len(items) == 0 {
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	notes := string(raw)
	return &notes
}
