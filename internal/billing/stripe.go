package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/bazario/bazario/internal/domain"
)

// StripeProvider implements Provider using the Stripe Payment Intents API.
type StripeProvider struct {
	api    *client.API
	config StripeConfig
}

// NewStripeProvider creates a new Stripe billing provider.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	api := client.New(config.APIKey, nil)

	return &StripeProvider{
		api:    api,
		config: config,
	}, nil
}

// Method identifies this provider for PaymentDetails records.
func (p *StripeProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodStripe
}

// CreatePayment creates a payment intent for the order total. The order ID
// doubles as the idempotency key so a retried checkout never double-charges.
func (p *StripeProvider) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	piParams := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String("order-" + params.OrderID),
		},
		Amount:   stripe.Int64(toCents(params.Amount)),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	piParams.AddMetadata("order_id", params.OrderID)

	pi, err := p.api.PaymentIntents.New(piParams)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	return &Payment{
		ProviderRef:  pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       fromCents(pi.Amount),
		Currency:     string(pi.Currency),
	}, nil
}

// CapturePayment retrieves the payment intent and reports its terminal
// status. Confirmation itself happens client-side via Stripe.js; the server
// only ever trusts what Stripe says about the intent.
func (p *StripeProvider) CapturePayment(ctx context.Context, params CapturePaymentParams) (*Capture, error) {
	pi, err := p.api.PaymentIntents.Get(params.ProviderRef, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("stripe: get payment intent %s: %w", params.ProviderRef, err)
	}

	return &Capture{
		ProviderRef: pi.ID,
		Status:      string(pi.Status),
		Succeeded:   pi.Status == stripe.PaymentIntentStatusSucceeded,
		Amount:      fromCents(pi.Amount),
		Currency:    string(pi.Currency),
	}, nil
}

// VerifyWebhookSignature verifies a Stripe webhook signature header.
func (p *StripeProvider) VerifyWebhookSignature(payload []byte, signature string) error {
	_, err := webhook.ConstructEvent(payload, signature, p.config.WebhookSecret)
	return err
}

// ParseWebhookEvent verifies the signature and normalizes the payment
// intent events this service cares about. Other event types come back as
// EventIgnored.
func (p *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe: webhook signature: %w", err)
	}

	var kind WebhookEventKind
	switch event.Type {
	case "payment_intent.succeeded":
		kind = EventPaymentSucceeded
	case "payment_intent.payment_failed":
		kind = EventPaymentFailed
	default:
		return &WebhookEvent{Kind: EventIgnored, Type: string(event.Type)}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("stripe: webhook payload: %w", err)
	}

	return &WebhookEvent{
		Kind:        kind,
		Type:        string(event.Type),
		OrderID:     pi.Metadata["order_id"],
		ProviderRef: pi.ID,
		Status:      string(pi.Status),
		Amount:      fromCents(pi.Amount),
		Currency:    string(pi.Currency),
	}, nil
}

// Stripe amounts are integral cents; ours are dollars.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
