package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario/internal/billing"
	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/events"
)

func paymentFixture(t *testing.T, provider billing.Provider) (*mockQuerier, *events.MockPublisher, domain.PaymentService) {
	t.Helper()

	m := &mockQuerier{}
	m.orders = append(m.orders, domain.Order{
		ID: "order-1", UserID: "user-1", Total: 143,
		OrderStatus: domain.OrderStatusPending, PaymentStatus: domain.PaymentStatusPending,
	})

	publisher := &events.MockPublisher{}
	svc := NewPaymentService(m, []billing.Provider{provider}, publisher, testLogger, nil, "usd")
	return m, publisher, svc
}

func TestPaymentService_CreatePayment_Success(t *testing.T) {
	m, _, svc := paymentFixture(t, billing.NewMockProvider(domain.PaymentMethodStripe))

	init, err := svc.CreatePayment(context.Background(), userAuth("user-1"), "order-1", domain.PaymentMethodStripe)
	require.NoError(t, err)
	assert.Equal(t, "mock_order-1", init.ProviderRef)
	assert.Equal(t, "mock_secret_order-1", init.ClientSecret)

	require.Len(t, m.paymentDetails, 1)
	details := m.paymentDetails[0]
	assert.Equal(t, "order-1", details.OrderID)
	assert.Equal(t, domain.PaymentMethodStripe, details.Provider)
	assert.Equal(t, 143.0, details.Amount)
	assert.Equal(t, "pending", details.Status)
}

func TestPaymentService_CreatePayment_UnknownMethod(t *testing.T) {
	_, _, svc := paymentFixture(t, billing.NewMockProvider(domain.PaymentMethodStripe))

	_, err := svc.CreatePayment(context.Background(), userAuth("user-1"), "order-1", domain.PaymentMethodPayPal)
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
}

func TestPaymentService_CreatePayment_OrderOwnerMismatch(t *testing.T) {
	_, _, svc := paymentFixture(t, billing.NewMockProvider(domain.PaymentMethodStripe))

	_, err := svc.CreatePayment(context.Background(), userAuth("user-2"), "order-1", domain.PaymentMethodStripe)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPaymentService_CreatePayment_ProviderError(t *testing.T) {
	provider := billing.NewMockProvider(domain.PaymentMethodStripe)
	provider.CreatePaymentFunc = func(ctx context.Context, params billing.CreatePaymentParams) (*billing.Payment, error) {
		return nil, errors.New("stripe is down")
	}
	m, _, svc := paymentFixture(t, provider)

	_, err := svc.CreatePayment(context.Background(), userAuth("user-1"), "order-1", domain.PaymentMethodStripe)
	assert.True(t, domain.IsCode(err, domain.EPAYMENT))
	assert.Empty(t, m.paymentDetails)
}

func TestPaymentService_CapturePayment_Success(t *testing.T) {
	m, publisher, svc := paymentFixture(t, billing.NewMockProvider(domain.PaymentMethodStripe))

	order, err := svc.CapturePayment(context.Background(), userAuth("user-1"), "order-1", "pi_123", domain.PaymentMethodStripe)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, domain.PaymentMethodStripe, order.PaymentMethod)

	require.Len(t, m.paymentDetails, 1)
	assert.Equal(t, "succeeded", m.paymentDetails[0].Status)
	assert.Equal(t, []string{events.SubjectPaymentCaptured}, publisher.Subjects())
}

func TestPaymentService_CapturePayment_ProviderErrorMarksFailed(t *testing.T) {
	provider := billing.NewMockProvider(domain.PaymentMethodStripe)
	provider.CapturePaymentFunc = func(ctx context.Context, params billing.CapturePaymentParams) (*billing.Capture, error) {
		return nil, errors.New("stripe is down")
	}
	m, publisher, svc := paymentFixture(t, provider)

	// The provider error is absorbed. The caller gets the order back in a
	// known Failed state, not an error.
	order, err := svc.CapturePayment(context.Background(), userAuth("user-1"), "order-1", "pi_123", domain.PaymentMethodStripe)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, order.PaymentStatus)

	require.Len(t, m.paymentDetails, 1)
	assert.Equal(t, "failed", m.paymentDetails[0].Status)
	assert.Equal(t, []string{events.SubjectPaymentFailed}, publisher.Subjects())
}

func TestPaymentService_CapturePayment_NotSucceededMarksFailed(t *testing.T) {
	provider := billing.NewMockProvider(domain.PaymentMethodPayPal)
	provider.MethodValue = domain.PaymentMethodPayPal
	provider.CapturePaymentFunc = func(ctx context.Context, params billing.CapturePaymentParams) (*billing.Capture, error) {
		return &billing.Capture{ProviderRef: params.ProviderRef, Status: "PENDING"}, nil
	}
	m, publisher, svc := paymentFixture(t, provider)

	order, err := svc.CapturePayment(context.Background(), userAuth("user-1"), "order-1", "paypal-9", domain.PaymentMethodPayPal)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, order.PaymentStatus)
	assert.Equal(t, domain.PaymentMethodPayPal, order.PaymentMethod)

	// The provider's own status is kept on the payment record.
	require.Len(t, m.paymentDetails, 1)
	assert.Equal(t, "PENDING", m.paymentDetails[0].Status)
	assert.Equal(t, []string{events.SubjectPaymentFailed}, publisher.Subjects())
}

func TestPaymentService_CapturePayment_UnknownMethod(t *testing.T) {
	_, publisher, svc := paymentFixture(t, billing.NewMockProvider(domain.PaymentMethodStripe))

	_, err := svc.CapturePayment(context.Background(), userAuth("user-1"), "order-1", "ref", domain.PaymentMethodPayPal)
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
	assert.Empty(t, publisher.Subjects())
}
