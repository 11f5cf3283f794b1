package billing

import "errors"

var (
	// ErrMissingAPIKey is returned when a provider is constructed without
	// credentials.
	ErrMissingAPIKey = errors.New("billing: API key is required")

	// ErrWebhooksNotSupported is returned by providers without webhook
	// signature verification.
	ErrWebhooksNotSupported = errors.New("billing: webhooks not supported by this provider")

	// ErrProviderUnavailable wraps transport-level failures talking to the
	// provider. Callers treat it as retryable.
	ErrProviderUnavailable = errors.New("billing: payment provider unavailable")

	// ErrPaymentNotFound is returned when the provider does not know the
	// payment reference.
	ErrPaymentNotFound = errors.New("billing: payment not found")
)
