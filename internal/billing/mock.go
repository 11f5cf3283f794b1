package billing

import (
	"context"

	"github.com/bazario/bazario/internal/domain"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	MethodValue domain.PaymentMethod

	CreatePaymentFunc          func(ctx context.Context, params CreatePaymentParams) (*Payment, error)
	CapturePaymentFunc         func(ctx context.Context, params CapturePaymentParams) (*Capture, error)
	VerifyWebhookSignatureFunc func(payload []byte, signature string) error
}

// NewMockProvider creates a mock with sensible defaults: every payment is
// created pending and captured successfully.
func NewMockProvider(method domain.PaymentMethod) *MockProvider {
	return &MockProvider{
		MethodValue: method,
		CreatePaymentFunc: func(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
			return &Payment{
				ProviderRef:  "mock_" + params.OrderID,
				ClientSecret: "mock_secret_" + params.OrderID,
				Status:       "pending",
				Amount:       params.Amount,
				Currency:     params.Currency,
			}, nil
		},
		CapturePaymentFunc: func(ctx context.Context, params CapturePaymentParams) (*Capture, error) {
			return &Capture{
				ProviderRef: params.ProviderRef,
				Status:      "succeeded",
				Succeeded:   true,
			}, nil
		},
		VerifyWebhookSignatureFunc: func(payload []byte, signature string) error {
			return nil
		},
	}
}

func (m *MockProvider) Method() domain.PaymentMethod {
	if m.MethodValue == "" {
		return domain.PaymentMethodStripe
	}
	return m.MethodValue
}

func (m *MockProvider) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	return m.CreatePaymentFunc(ctx, params)
}

func (m *MockProvider) CapturePayment(ctx context.Context, params CapturePaymentParams) (*Capture, error) {
	return m.CapturePaymentFunc(ctx, params)
}

func (m *MockProvider) VerifyWebhookSignature(payload []byte, signature string) error {
	return m.VerifyWebhookSignatureFunc(payload, signature)
}
