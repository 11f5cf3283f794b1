package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario/internal/domain"
)

func TestNewStripeProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewStripeProvider(StripeConfig{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	p, err := NewStripeProvider(StripeConfig{APIKey: "sk_test_123"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodStripe, p.Method())
}

func TestStripeConfig_IsTestMode(t *testing.T) {
	assert.True(t, StripeConfig{APIKey: "sk_test_123"}.IsTestMode())
	assert.False(t, StripeConfig{APIKey: "sk_live_123"}.IsTestMode())
}

func TestCentsConversion(t *testing.T) {
	assert.Equal(t, int64(14350), toCents(143.50))
	assert.Equal(t, int64(10), toCents(0.1))
	// 19.99 is not representable exactly in binary; rounding must absorb it.
	assert.Equal(t, int64(1999), toCents(19.99))
	assert.Equal(t, 143.5, fromCents(14350))
	assert.Equal(t, 0.0, fromCents(0))
}
