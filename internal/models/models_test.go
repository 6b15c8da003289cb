package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to string
		ok       bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	p := Product{Price: decimal.NewNullDecimal(decimal.NewFromInt(10))}
	assert.True(t, p.EffectivePrice().Decimal.Equal(decimal.NewFromInt(10)))

	p.DiscountPrice = decimal.NewNullDecimal(decimal.NewFromInt(8))
	assert.True(t, p.EffectivePrice().Decimal.Equal(decimal.NewFromInt(8)))

	assert.False(t, (&Product{}).EffectivePrice().Valid)
	assert.True(t, ValidType(TypeFasteners))
	assert.False(t, ValidType("all"))
}
