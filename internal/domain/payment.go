package domain

import (
	"context"
	"time"
)

// PaymentStatus is the local, normalized view of a payment's lifecycle.
// Provider-specific terminal statuses map to Paid or Failed.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusDeclined PaymentStatus = "Declined"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// PaymentMethod identifies the external payment provider.
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "Stripe"
	PaymentMethodPayPal PaymentMethod = "Paypal"
)

var ErrUnknownPaymentMethod = &Error{Code: EINVALID, Message: "Unknown payment method."}

// PaymentDetails records the provider-side payment for an order.
// Keyed uniquely by OrderID: a capture retry overwrites, never duplicates.
type PaymentDetails struct {
	ID          string
	OrderID     string
	UserID      string
	Provider    PaymentMethod
	ProviderRef string // payment intent ID (Stripe) or order ID (PayPal)
	Amount      float64
	Currency    string
	Status      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentInitiation is what the client needs to start the provider flow.
type PaymentInitiation struct {
	ProviderRef  string
	ClientSecret string // Stripe only
}

// PaymentService owns the contract with the payment providers: initiate a
// provider payment for an order, and on capture normalize the provider's
// terminal status into the order's PaymentStatus.
type PaymentService interface {
	// CreatePayment initiates a provider payment for the order total.
	CreatePayment(ctx context.Context, auth AuthContext, orderID string, method PaymentMethod) (*PaymentInitiation, error)

	// CapturePayment captures/confirms the provider payment and persists
	// PaymentDetails. A non-success provider response marks the order's
	// payment status Failed without returning an error, so the order record
	// survives in a known state for a later retry.
	CapturePayment(ctx context.Context, auth AuthContext, orderID, providerRef string, method PaymentMethod) (*Order, error)
}
