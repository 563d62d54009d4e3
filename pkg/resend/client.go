package resend

import (
	"bytes"
	"context"
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

var errAPIKeyRequired = errors.New("resend api key is required")

// Client sends transactional email through the Resend API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient validates the credentials and returns a ready client.
func NewClient(ctx context.Context, cfg config.ResendConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logg,
	}

	if logg != nil {
		logg.Info(ctx, "resend client initialized")
	}
	return c, nil
}

// Email is one outbound message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send posts the email. Non-2xx responses become dependency errors carrying
// the response body for the logs.
func (c *Client) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build email request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call resend")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("resend api error: %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}
	return nil
}
