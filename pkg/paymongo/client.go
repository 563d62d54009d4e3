package paymongo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/maisonarlo/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

var errSecretKeyRequired = errors.New("paymongo secret key is required")

// Client calls the PayMongo REST API. Requests authenticate with HTTP Basic
// auth, the secret key as user and an empty password.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient validates the credentials and returns a ready client.
func NewClient(ctx context.Context, cfg config.PayMongoConfig, logg *logger.Logger) (*Client, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return nil, errSecretKeyRequired
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  secret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logg,
	}

	if logg != nil {
		logg.Info(ctx, "paymongo client initialized")
	}
	return c, nil
}

// LineItem is one priced entry of a checkout session, amount in minor units.
type LineItem struct {
	Name     string   `json:"name"`
	Amount   int64    `json:"amount"`
	Quantity int      `json:"quantity"`
	Currency string   `json:"currency"`
	Images   []string `json:"images"`
}

// Billing is the customer contact block attached to a session.
type Billing struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutSessionParams describes the session to create.
type CheckoutSessionParams struct {
	LineItems          []LineItem
	PaymentMethodTypes []string
	Currency           string
	Billing            Billing
	Description        string
	ReferenceNumber    string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

// CheckoutSession is the subset of the provider response the store needs.
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

type sessionAttributes struct {
	SendEmailReceipt   bool              `json:"send_email_receipt"`
	ShowDescription    bool              `json:"show_description"`
	ShowLineItems      bool              `json:"show_line_items"`
	LineItems          []LineItem        `json:"line_items"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
	Currency           string            `json:"currency"`
	Billing            Billing           `json:"billing"`
	Description        string            `json:"description"`
	ReferenceNumber    string            `json:"reference_number"`
	SuccessURL         string            `json:"success_url"`
	CancelURL          string            `json:"cancel_url"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

type sessionRequest struct {
	Data struct {
		Attributes sessionAttributes `json:"attributes"`
	} `json:"data"`
}

type sessionResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL string `json:"checkout_url"`
		} `json:"attributes"`
	} `json:"data"`
}

type apiErrorResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// CreateCheckoutSession creates a hosted checkout session and returns its id
// and redirect URL. Provider failures come back as typed dependency errors
// carrying the provider's detail when it could be extracted.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	var payload sessionRequest
	payload.Data.Attributes = sessionAttributes{
		SendEmailReceipt:   true,
		ShowDescription:    true,
		ShowLineItems:      true,
		LineItems:          params.LineItems,
		PaymentMethodTypes: params.PaymentMethodTypes,
		Currency:           params.Currency,
		Billing:            params.Billing,
		Description:        params.Description,
		ReferenceNumber:    params.ReferenceNumber,
		SuccessURL:         params.SuccessURL,
		CancelURL:          params.CancelURL,
		Metadata:           params.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout session payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout_sessions", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build checkout session request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authorizationHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call paymongo")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read paymongo response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp.StatusCode, respBody)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode paymongo response")
	}

	return &CheckoutSession{
		ID:          parsed.Data.ID,
		CheckoutURL: parsed.Data.Attributes.CheckoutURL,
	}, nil
}

func (c *Client) authorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.secretKey+":"))
}

func (c *Client) apiError(status int, body []byte) error {
	message := fmt.Sprintf("paymongo api error: %d", status)

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		if detail := parsed.Errors[0].Detail; detail != "" {
			message = detail
		} else if code := parsed.Errors[0].Code; code != "" {
			message = code
		}
	}

	return pkgerrors.New(pkgerrors.CodeDependency, message)
}
