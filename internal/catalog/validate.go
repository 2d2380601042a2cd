package catalog

import "fmt"

// Validate checks a product for internal consistency before it is handed to
// a configurator session. Lookup by choice value is ambiguous when two
// choices share a value, so duplicates are rejected here instead of letting
// the pricing engine silently pick the first match.
func Validate(p Product) error {
	if p.ID == "" {
		return fmt.Errorf("product has no id")
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("product %s: negative base price %.2f", p.ID, p.BasePrice)
	}

	optionIDs := make(map[string]bool, len(p.Options))
	for _, o := range p.Options {
		if optionIDs[o.ID] {
			return fmt.Errorf("product %s: duplicate option id %q", p.ID, o.ID)
		}
		optionIDs[o.ID] = true

		seen := make(map[string]bool, len(o.Choices))
		for _, c := range o.Choices {
			if seen[c.Value] {
				return fmt.Errorf("product %s: option %q has duplicate choice value %q", p.ID, o.ID, c.Value)
			}
			seen[c.Value] = true
		}

		if o.Min != nil && o.Max != nil && *o.Min > *o.Max {
			return fmt.Errorf("product %s: option %q has min %d greater than max %d", p.ID, o.ID, *o.Min, *o.Max)
		}
	}

	for _, o := range p.Options {
		if o.DependsOn != nil && !optionIDs[o.DependsOn.OptionID] {
			return fmt.Errorf("product %s: option %q depends on unknown option %q", p.ID, o.ID, o.DependsOn.OptionID)
		}
	}

	addOnIDs := make(map[string]bool, len(p.AddOns))
	for _, a := range p.AddOns {
		if addOnIDs[a.ID] {
			return fmt.Errorf("product %s: duplicate add-on id %q", p.ID, a.ID)
		}
		addOnIDs[a.ID] = true

		if a.Price < 0 {
			return fmt.Errorf("product %s: add-on %q has negative price %.2f", p.ID, a.ID, a.Price)
		}
		if a.DependsOn != nil && !optionIDs[a.DependsOn.OptionID] {
			return fmt.Errorf("product %s: add-on %q depends on unknown option %q", p.ID, a.ID, a.DependsOn.OptionID)
		}
	}

	return nil
}
