package paymongo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonarlo/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), config.PayMongoConfig{
		SecretKey: "sk_test_abc",
		BaseURL:   baseURL,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresSecretKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.PayMongoConfig{}, nil)
	require.Error(t, err)
}

func TestCreateCheckoutSessionSuccess(t *testing.T) {
	var gotAuth string
	var gotBody sessionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout_sessions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"cs_123","attributes":{"checkout_url":"https://checkout.paymongo.com/cs_123"}}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		LineItems: []LineItem{
			{Name: "Santelmo", Amount: 80000, Quantity: 2, Currency: "PHP", Images: []string{}},
		},
		PaymentMethodTypes: []string{"card", "gcash", "paymaya"},
		Currency:           "PHP",
		Billing:            Billing{Name: "A", Email: "a@b.com", Phone: "0917"},
		ReferenceNumber:    "REF-1",
		SuccessURL:         "https://shop.example/success",
		CancelURL:          "https://shop.example/",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://checkout.paymongo.com/cs_123", session.CheckoutURL)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test_abc:"))
	assert.Equal(t, wantAuth, gotAuth)

	attrs := gotBody.Data.Attributes
	assert.True(t, attrs.SendEmailReceipt)
	assert.Equal(t, "PHP", attrs.Currency)
	require.Len(t, attrs.LineItems, 1)
	assert.Equal(t, int64(80000), attrs.LineItems[0].Amount)
}

func TestCreateCheckoutSessionSurfacesProviderDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"parameter_invalid","detail":"amount must be at least 2000"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, "amount must be at least 2000", typed.Message())
}

func TestCreateCheckoutSessionFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "paymongo api error: 503", typed.Message())
}
