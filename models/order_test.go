package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(raw), status)
	}

	// Case-insensitive input normalizes.
	status, err := ParseOrderStatus("Delivered")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDelivered, status)

	_, err = ParseOrderStatus("fulfilled")
	assert.Error(t, err)
}

func TestParsePaymentStatus(t *testing.T) {
	for _, raw := range []string{"pending", "completed", "failed"} {
		status, err := ParsePaymentStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatus(raw), status)
	}

	_, err := ParsePaymentStatus("refunded")
	assert.Error(t, err)
}

func TestIsSupportedCountry(t *testing.T) {
	assert.True(t, IsSupportedCountry("JO"))
	assert.True(t, IsSupportedCountry("PS"))
	assert.False(t, IsSupportedCountry("FR"))
	assert.False(t, IsSupportedCountry("jo"), "codes are uppercase ISO")
}
