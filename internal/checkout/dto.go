package checkout

import "github.com/shopspring/decimal"

// CartItem is one storefront cart entry. Price arrives as a decimal string
// so a single malformed price drops that item instead of failing the whole
// request body.
type CartItem struct {
	Title    string `json:"title"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// SessionRequest is the checkout request body from the storefront.
type SessionRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required"`
	CustomerEmail string          `json:"customer_email" validate:"required,email"`
	CustomerPhone string          `json:"customer_phone" validate:"required"`
	Items         []CartItem      `json:"items" validate:"required,min=1"`
	DeliveryType  string          `json:"delivery_type"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
}

// SessionResult carries the redirect the storefront needs.
type SessionResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}
