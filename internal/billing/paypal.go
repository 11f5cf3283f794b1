package billing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bazario/bazario/internal/domain"
)

const (
	paypalLiveURL    = "https://api-m.paypal.com"
	paypalSandboxURL = "https://api-m.sandbox.paypal.com"

	// Terminal status of a fully captured PayPal order.
	paypalStatusCompleted = "COMPLETED"
)

// PayPalConfig holds PayPal REST API credentials.
type PayPalConfig struct {
	ClientID string
	Secret   string
	Sandbox  bool
}

// Validate checks that required fields are present.
func (c PayPalConfig) Validate() error {
	if c.ClientID == "" || c.Secret == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// PayPalProvider implements Provider against the PayPal Orders v2 REST API.
type PayPalProvider struct {
	baseURL string
	auth    string
	client  *http.Client
}

// NewPayPalProvider creates a new PayPal billing provider.
func NewPayPalProvider(config PayPalConfig) (*PayPalProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL := paypalLiveURL
	if config.Sandbox {
		baseURL = paypalSandboxURL
	}

	return &PayPalProvider{
		baseURL: baseURL,
		auth:    base64.StdEncoding.EncodeToString([]byte(config.ClientID + ":" + config.Secret)),
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Method identifies this provider for PaymentDetails records.
func (p *PayPalProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodPayPal
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id,omitempty"`
	Amount      paypalAmount `json:"amount"`
	Payments    *struct {
		Captures []struct {
			ID     string       `json:"id"`
			Status string       `json:"status"`
			Amount paypalAmount `json:"amount"`
		} `json:"captures"`
	} `json:"payments,omitempty"`
}

type paypalOrder struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

// CreatePayment creates a PayPal order for the cart total. The returned
// provider ref is the PayPal order ID the client approves in the PayPal UI.
func (p *PayPalProvider) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": params.OrderID,
				"amount": paypalAmount{
					CurrencyCode: currencyCode(params.Currency),
					Value:        strconv.FormatFloat(params.Amount, 'f', 2, 64),
				},
			},
		},
	}

	var order paypalOrder
	if err := p.do(ctx, http.MethodPost, "/v2/checkout/orders", body, &order); err != nil {
		return nil, fmt.Errorf("paypal: create order: %w", err)
	}

	return &Payment{
		ProviderRef: order.ID,
		Status:      order.Status,
		Amount:      params.Amount,
		Currency:    params.Currency,
	}, nil
}

// CapturePayment captures an approved PayPal order. Succeeded is true only
// when PayPal reports the order COMPLETED.
func (p *PayPalProvider) CapturePayment(ctx context.Context, params CapturePaymentParams) (*Capture, error) {
	var order paypalOrder
	path := "/v2/checkout/orders/" + params.ProviderRef + "/capture"
	if err := p.do(ctx, http.MethodPost, path, struct{}{}, &order); err != nil {
		return nil, fmt.Errorf("paypal: capture order %s: %w", params.ProviderRef, err)
	}

	capture := &Capture{
		ProviderRef: order.ID,
		Status:      order.Status,
		Succeeded:   order.Status == paypalStatusCompleted,
	}

	if len(order.PurchaseUnits) > 0 {
		unit := order.PurchaseUnits[0]
		if unit.Payments != nil && len(unit.Payments.Captures) > 0 {
			c := unit.Payments.Captures[0]
			if amount, err := strconv.ParseFloat(c.Amount.Value, 64); err == nil {
				capture.Amount = amount
			}
			capture.Currency = c.Amount.CurrencyCode
		}
	}

	return capture, nil
}

// VerifyWebhookSignature is not implemented for PayPal. Captures are
// confirmed synchronously by CapturePayment.
func (p *PayPalProvider) VerifyWebhookSignature(payload []byte, signature string) error {
	return ErrWebhooksNotSupported
}

func (p *PayPalProvider) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+p.auth)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("paypal: %s %s returned %d: %s", method, path, resp.StatusCode, raw)
	}

	return json.Unmarshal(raw, out)
}

// PayPal wants upper-case ISO codes where Stripe wants lower-case.
func currencyCode(currency string) string {
	b := []byte(currency)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}
