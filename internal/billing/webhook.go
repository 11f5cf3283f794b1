package billing

// WebhookEventKind classifies a provider webhook event after normalization.
type WebhookEventKind string

const (
	EventPaymentSucceeded WebhookEventKind = "payment_succeeded"
	EventPaymentFailed    WebhookEventKind = "payment_failed"
	EventIgnored          WebhookEventKind = "ignored"
)

// WebhookEvent is a provider webhook event reduced to what the payment
// reconciliation needs. OrderID comes from the metadata attached at
// payment creation.
type WebhookEvent struct {
	Kind        WebhookEventKind
	Type        string
	OrderID     string
	ProviderRef string
	Status      string
	Amount      float64
	Currency    string
}
