package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the durable record of one confirmed payment. Rows are written
// exactly once by the webhook pipeline; later status transitions belong to
// the back office. Notes holds the serialized provider line items, the only
// per-item detail kept (there is no normalized order-line table).
type Order struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber      string          `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	CustomerName     string          `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerEmail    string          `gorm:"column:customer_email;not null" json:"customer_email"`
	CustomerPhone    string          `gorm:"column:customer_phone" json:"customer_phone"`
	QuantityOrdered  int             `gorm:"column:quantity_ordered;not null;default:1" json:"quantity_ordered"`
	Subtotal         decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	ShippingFee      decimal.Decimal `gorm:"column:shipping_fee;type:numeric(12,2);not null;default:0" json:"shipping_fee"`
	TotalPrice       decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"total_price"`
	DeliveryLocation string          `gorm:"column:delivery_location" json:"delivery_location"`
	DeliveryType     string          `gorm:"column:delivery_type;not null" json:"delivery_type"`
	PaymentStatus    string          `gorm:"column:payment_status;not null" json:"payment_status"`
	OrderStatus      string          `gorm:"column:order_status;not null" json:"order_status"`
	ProviderRef      string          `gorm:"column:provider_ref" json:"provider_ref"`
	Notes            *string         `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
