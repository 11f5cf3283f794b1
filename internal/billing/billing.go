// Package billing abstracts the external payment providers. The pricing
// core only ever initiates a payment for an order total and captures it;
// everything else about the charge lifecycle belongs to the provider.
package billing

import (
	"context"

	"github.com/bazario/bazario/internal/domain"
)

// Provider defines the interface for payment processing.
// Implementations: StripeProvider, PayPalProvider, MockProvider.
type Provider interface {
	// Method identifies the provider for PaymentDetails records.
	Method() domain.PaymentMethod

	// CreatePayment initiates a provider-side payment for an order total and
	// returns the reference the client needs to complete it.
	CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error)

	// CapturePayment captures or confirms a previously initiated payment and
	// reports the provider's terminal status.
	CapturePayment(ctx context.Context, params CapturePaymentParams) (*Capture, error)

	// VerifyWebhookSignature verifies that a webhook request is authentic.
	// Providers without webhook support return ErrWebhooksNotSupported.
	VerifyWebhookSignature(payload []byte, signature string) error
}

// CreatePaymentParams describes the payment to initiate.
type CreatePaymentParams struct {
	// OrderID keys the payment for reconciliation; it is carried in the
	// provider's metadata and doubles as the idempotency key.
	OrderID string

	// Amount in currency units (dollars, not cents).
	Amount   float64
	Currency string
}

// Payment is a provider-side payment ready for client confirmation.
type Payment struct {
	// ProviderRef is the provider's payment identifier: a payment intent ID
	// for Stripe, an order ID for PayPal.
	ProviderRef string

	// ClientSecret is required by Stripe.js to confirm the payment.
	// Empty for providers that do not use one.
	ClientSecret string

	Status   string
	Amount   float64
	Currency string
}

// CapturePaymentParams identifies the payment to capture.
type CapturePaymentParams struct {
	// OrderID is carried for provider-side logging and reconciliation.
	OrderID     string
	ProviderRef string
}

// Capture is the provider's terminal view of a payment.
type Capture struct {
	ProviderRef string

	// Status is the provider's raw terminal status string, persisted verbatim
	// in PaymentDetails for audit.
	Status string

	// Succeeded is true only for the provider's success status
	// (Stripe "succeeded", PayPal "COMPLETED"). Everything else maps to a
	// failed local payment.
	Succeeded bool

	Amount   float64
	Currency string
}
