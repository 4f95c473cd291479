package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, IsSupportedCurrency("USD"))
	assert.True(t, IsSupportedCurrency("JOD"))
	assert.False(t, IsSupportedCurrency("usd"), "codes are uppercase")
	assert.False(t, IsSupportedCurrency("XXX"))
}

func TestCurrencyExchangeRate(t *testing.T) {
	assert.Equal(t, 1.0, CurrencyExchangeRate("USD"))
	assert.Equal(t, 0.71, CurrencyExchangeRate("JOD"))
	assert.Equal(t, 0.0, CurrencyExchangeRate("XXX"))
}
