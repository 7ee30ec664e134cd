package domain

const (
	priceValueNumerator = 1000.0

	blendPerformanceWeight = 0.70
	blendValueWeight       = 0.30
	blendValueDivisor      = 10.0
	blendValueCeiling      = 100.0
)

// PriceValue is the price-only value score: 1000 / monthly cost. A
// monthly cost of exactly 0 denotes a free offering and scores 0; free
// models are ranked as their own category, not as infinitely good value.
func PriceValue(monthlyCost float64) float64 {
	if monthlyCost > 0 {
		return priceValueNumerator / monthlyCost
	}
	return 0
}

// BlendedScore combines normalized performance with the price-only
// value score, 70/30. The value term is divided by 10 and capped at 100
// before blending so that extremely cheap models with little benchmark
// coverage cannot dominate purely on price.
func BlendedScore(performance, priceValue float64) float64 {
	v := priceValue / blendValueDivisor
	if v > blendValueCeiling {
		v = blendValueCeiling
	}
	return performance*blendPerformanceWeight + v*blendValueWeight
}
