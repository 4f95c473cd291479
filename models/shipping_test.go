package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingZoneMatchesCountry(t *testing.T) {
	zone := &ShippingZone{Countries: "JO, SA,AE"}
	assert.True(t, zone.MatchesCountry("JO"))
	assert.True(t, zone.MatchesCountry("SA"), "whitespace around codes is ignored")
	assert.True(t, zone.MatchesCountry("AE"))
	assert.False(t, zone.MatchesCountry("EG"))
}

func TestShippingRateCost(t *testing.T) {
	rate := &ShippingRate{
		BaseCost:    5,
		PerKgCost:   2,
		MinSubtotal: 10,
		MaxSubtotal: 100,
		MaxWeight:   20,
	}

	cost, ok := rate.Cost(50, 3)
	assert.True(t, ok)
	assert.Equal(t, 11.0, cost)

	_, ok = rate.Cost(5, 3)
	assert.False(t, ok, "below minimum subtotal")

	_, ok = rate.Cost(150, 3)
	assert.False(t, ok, "above maximum subtotal")

	_, ok = rate.Cost(50, 25)
	assert.False(t, ok, "above maximum weight")
}

func TestShippingRateCostUnboundedMax(t *testing.T) {
	rate := &ShippingRate{BaseCost: 5}
	cost, ok := rate.Cost(100000, 500)
	assert.True(t, ok, "zero max bounds mean unbounded")
	assert.Equal(t, 5.0, cost)
}
