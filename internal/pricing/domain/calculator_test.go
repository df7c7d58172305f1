package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateBenefitTotal(t *testing.T) {
	benefits := []Benefit{
		{BasePrice: 100},
		{BasePrice: 200},
	}

	assert.Equal(t, 300.0, CalculateBenefitTotal(benefits, 1.0))
	assert.Equal(t, 450.0, CalculateBenefitTotal(benefits, 1.5))
	assert.Zero(t, CalculateBenefitTotal(nil, 1.0))
	assert.Zero(t, CalculateBenefitTotal([]Benefit{}, 2.0))
}

func TestCalculateBenefitTotal_PerBenefitMultiplier(t *testing.T) {
	benefits := []Benefit{
		{BasePrice: 100, RegionMultiplier: floatPtr(2.0)},
		{BasePrice: 50},
	}

	assert.Equal(t, 250.0, CalculateBenefitTotal(benefits, 1.0))
	assert.Equal(t, 500.0, CalculateBenefitTotal(benefits, 2.0))
}

func TestApplicableThresholds(t *testing.T) {
	thresholds := []PricingThreshold{
		{Type: ThresholdBenefitCount, Value: 2, DiscountPercentage: 5},
		{Type: ThresholdBenefitCount, Value: 5, DiscountPercentage: 12},
		{Type: ThresholdTotalValue, Value: 1000, DiscountPercentage: 10},
		{Type: ThresholdTierBased, Value: 1, DiscountPercentage: 50},
	}

	applied := ApplicableThresholds(3, 1500, thresholds)
	assert.Len(t, applied, 2)

	// Boundary: thresholds match at exactly the configured value.
	applied = ApplicableThresholds(2, 1000, thresholds)
	assert.Len(t, applied, 2)

	applied = ApplicableThresholds(1, 999, thresholds)
	assert.Empty(t, applied)

	// tier_based rules are never matched, whatever the inputs.
	applied = ApplicableThresholds(100, 1e9, thresholds)
	for _, th := range applied {
		assert.NotEqual(t, ThresholdTierBased, th.Type)
	}
}

func TestMaxDiscount_NoStacking(t *testing.T) {
	thresholds := []PricingThreshold{
		{DiscountPercentage: 5},
		{DiscountPercentage: 10},
	}

	assert.Equal(t, 10.0, MaxDiscount(thresholds))
	assert.Zero(t, MaxDiscount(nil))
}

func TestCalculateDynamicPricing(t *testing.T) {
	benefits := []Benefit{
		{BasePrice: 100},
		{BasePrice: 200},
	}
	thresholds := []PricingThreshold{
		{Type: ThresholdBenefitCount, Value: 2, DiscountPercentage: 5},
	}

	quote := CalculateDynamicPricing(benefits, 1.0, thresholds)

	assert.Equal(t, 300.0, quote.BenefitTotal)
	assert.Len(t, quote.AppliedThresholds, 1)
	assert.Equal(t, 5.0, quote.MaxDiscount)
	assert.Equal(t, 285.0, quote.DiscountedBenefitTotal)
	assert.Equal(t, 15.0, quote.Savings)
}

func TestCalculateDynamicPricing_EmptySelection(t *testing.T) {
	quote := CalculateDynamicPricing(nil, 1.0, []PricingThreshold{
		{Type: ThresholdBenefitCount, Value: 2, DiscountPercentage: 5},
		{Type: ThresholdTotalValue, Value: 500, DiscountPercentage: 10},
	})

	assert.Zero(t, quote.BenefitTotal)
	assert.Empty(t, quote.AppliedThresholds)
	assert.Zero(t, quote.MaxDiscount)
	assert.Zero(t, quote.DiscountedBenefitTotal)
	assert.Zero(t, quote.Savings)
}
