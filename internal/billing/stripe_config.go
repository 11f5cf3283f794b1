package billing

import "strings"

// StripeConfig holds Stripe API credentials.
type StripeConfig struct {
	APIKey         string
	PublishableKey string
	WebhookSecret  string
}

// Validate checks that required fields are present.
func (c StripeConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// IsTestMode reports whether the configured key is a test-mode key.
func (c StripeConfig) IsTestMode() bool {
	return strings.HasPrefix(c.APIKey, "sk_test_")
}
