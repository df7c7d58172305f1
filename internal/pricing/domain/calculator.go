package domain

// Quote is the dynamic pricing breakdown for a benefit selection. Values
// are unrounded; currency formatting happens at display time only.
type Quote struct {
	BenefitTotal           float64            `json:"benefit_total"`
	AppliedThresholds      []PricingThreshold `json:"applied_thresholds"`
	MaxDiscount            float64            `json:"max_discount"`
	DiscountedBenefitTotal float64            `json:"discounted_benefit_total"`
	Savings                float64            `json:"savings"`
}

// CalculateBenefitTotal sums each benefit's base price scaled by its own
// region multiplier (1 when unset) and the caller's region multiplier.
func CalculateBenefitTotal(benefits []Benefit, regionMultiplier float64) float64 {
	var total float64
	for _, b := range benefits {
		m := 1.0
		if b.RegionMultiplier != nil {
			m = *b.RegionMultiplier
		}
		total += b.BasePrice * m * regionMultiplier
	}
	return total
}

// ApplicableThresholds filters the thresholds reached by the selection.
// tier_based thresholds are never matched here.
func ApplicableThresholds(benefitCount int, totalValue float64, thresholds []PricingThreshold) []PricingThreshold {
	applied := make([]PricingThreshold, 0, len(thresholds))
	for _, th := range thresholds {
		switch th.Type {
		case ThresholdBenefitCount:
			if float64(benefitCount) >= th.Value {
				applied = append(applied, th)
			}
		case ThresholdTotalValue:
			if totalValue >= th.Value {
				applied = append(applied, th)
			}
		}
	}
	return applied
}

// MaxDiscount returns the best discount among the thresholds. Discounts do
// not stack.
func MaxDiscount(thresholds []PricingThreshold) float64 {
	var max float64
	for _, th := range thresholds {
		if th.DiscountPercentage > max {
			max = th.DiscountPercentage
		}
	}
	return max
}

// CalculateDynamicPricing runs the full quote chain for a selection.
func CalculateDynamicPricing(benefits []Benefit, regionMultiplier float64, thresholds []PricingThreshold) Quote {
	total := CalculateBenefitTotal(benefits, regionMultiplier)
	applied := ApplicableThresholds(len(benefits), total, thresholds)
	discount := MaxDiscount(applied)
	discounted := total * (1 - discount/100)

	return Quote{
		BenefitTotal:           total,
		AppliedThresholds:      applied,
		MaxDiscount:            discount,
		DiscountedBenefitTotal: discounted,
		Savings:                total - discounted,
	}
}
