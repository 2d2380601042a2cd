package pricing

// Quantity discount tiers, highest threshold first so a higher discount is
// never shadowed by a lower one. A tier takes effect strictly past its
// threshold: quantity 50 is still 5%, quantity 51 is 10%.
var discountTiers = []struct {
	Threshold int
	Rate      float64
}{
	{Threshold: 50, Rate: 0.10},
	{Threshold: 10, Rate: 0.05},
}

// DiscountRateFor returns the quantity discount rate in [0, 1).
func DiscountRateFor(quantity int) float64 {
	for _, tier := range discountTiers {
		if quantity > tier.Threshold {
			return tier.Rate
		}
	}
	return 0
}

// AppliedDiscountPercent returns the discount as a whole-number percentage
// for UI badges.
func AppliedDiscountPercent(quantity int) float64 {
	return DiscountRateFor(quantity) * 100
}

// NextTier describes the closest discount tier a quantity has not yet
// unlocked.
type NextTier struct {
	Needed          int     `json:"needed"`
	DiscountPercent float64 `json:"discount_percent"`
}

// NextTierFor scans tiers from the lowest threshold up and returns the first
// one the quantity does not exceed, with the number of additional units
// needed to get past it. Returns false once the highest tier is already
// active.
func NextTierFor(quantity int) (NextTier, bool) {
	for i := len(discountTiers) - 1; i >= 0; i-- {
		tier := discountTiers[i]
		if quantity <= tier.Threshold {
			return NextTier{
				Needed:          tier.Threshold - quantity + 1,
				DiscountPercent: tier.Rate * 100,
			}, true
		}
	}
	return NextTier{}, false
}
