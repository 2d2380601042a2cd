package pricing

import (
	"math"

	"configureflow/internal/catalog"
)

// OptionModifier is the price delta contributed by one selected choice.
type OptionModifier struct {
	OptionID string  `json:"option_id"`
	Amount   float64 `json:"amount"`
}

// AddOnCost is the cost contributed by one selected add-on.
type AddOnCost struct {
	AddOnID string  `json:"add_on_id"`
	Amount  float64 `json:"amount"`
}

// Breakdown is the itemized decomposition of a configuration's total price.
// Invariants: Subtotal = (BasePrice + Σ modifiers + Σ add-on costs) × quantity
// and Total = Subtotal − QuantityDiscount.
type Breakdown struct {
	BasePrice        float64          `json:"base_price"`
	OptionModifiers  []OptionModifier `json:"option_modifiers"`
	AddOnCosts       []AddOnCost      `json:"add_on_costs"`
	Subtotal         float64          `json:"subtotal"`
	QuantityDiscount float64          `json:"quantity_discount"`
	Total            float64          `json:"total"`
}

// ComputeBreakdown prices a configuration against its product. Pure and
// deterministic: selections without a matching choice and unknown add-on ids
// are skipped without error, and the modifier/cost lists follow the product's
// own option and add-on order. Amounts are left unrounded; callers round at
// the display boundary with RoundToCents.
func ComputeBreakdown(cfg catalog.Configuration, product catalog.Product) Breakdown {
	modifiers := []OptionModifier{}
	costs := []AddOnCost{}

	for _, option := range product.Options {
		selected := cfg.Selections[option.ID]
		if !catalog.Selected(selected) || len(option.Choices) == 0 {
			continue
		}

		for _, choice := range option.Choices {
			if !catalog.EqualValues(choice.Value, selected) {
				continue
			}
			if choice.PriceModifier != 0 {
				modifiers = append(modifiers, OptionModifier{
					OptionID: option.ID,
					Amount:   choice.PriceModifier,
				})
			}
			break
		}
	}

	for _, id := range cfg.AddOns {
		addOn, ok := product.AddOnByID(id)
		if !ok {
			continue
		}
		costs = append(costs, AddOnCost{AddOnID: addOn.ID, Amount: addOn.Price})
	}

	unitPrice := product.BasePrice
	for _, m := range modifiers {
		unitPrice += m.Amount
	}
	for _, c := range costs {
		unitPrice += c.Amount
	}

	subtotal := unitPrice * float64(cfg.Quantity)
	discount := subtotal * DiscountRateFor(cfg.Quantity)

	return Breakdown{
		BasePrice:        product.BasePrice,
		OptionModifiers:  modifiers,
		AddOnCosts:       costs,
		Subtotal:         subtotal,
		QuantityDiscount: discount,
		Total:            subtotal - discount,
	}
}

// RoundToCents rounds a monetary amount to two decimal places. Applied once,
// at the display boundary; breakdown math stays unrounded.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
