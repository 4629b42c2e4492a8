package model_test

import (
	"testing"
	"time"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPricing_EffectivePrice(t *testing.T) {
	end := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	normal := int64(750_000)

	pricing := &model.Pricing{
		EarlyBirdPrice: 500_000,
		NormalPrice:    &normal,
		EarlyBirdEnd:   end,
	}

	t.Run("before boundary", func(t *testing.T) {
		assert.Equal(t, int64(500_000), pricing.EffectivePrice(end.Add(-time.Second)))
	})

	t.Run("exactly at boundary is still early bird", func(t *testing.T) {
		assert.Equal(t, int64(500_000), pricing.EffectivePrice(end))
	})

	t.Run("after boundary", func(t *testing.T) {
		assert.Equal(t, int64(750_000), pricing.EffectivePrice(end.Add(time.Second)))
	})

	t.Run("after boundary without normal price falls back to 1.2x", func(t *testing.T) {
		p := &model.Pricing{EarlyBirdPrice: 500_000, EarlyBirdEnd: end}
		assert.Equal(t, int64(600_000), p.EffectivePrice(end.Add(time.Second)))
	})
}
