// Package validate checks configurations against their product's dependency
// rules and quantity bounds. Validation is read-only and accumulates every
// issue instead of stopping at the first one, so the UI can flag all
// conflicts at once.
package validate

import (
	"fmt"

	"configureflow/internal/catalog"
)

// Stable issue codes. The human message may change; the code is the contract.
const (
	CodeDependencyConflict = "dependency_conflict"
	CodeDependencyMissing  = "dependency_missing"
	CodeInvalidQuantity    = "invalid_quantity"
	CodeHighQuantity       = "high_quantity"
)

// Orders above this size get a non-blocking review warning. Business
// constant, deliberately not derived from the discount tiers.
const highQuantityThreshold = 47

// Issue is a single validation finding. OptionID carries the offending
// option id, or the add-on id for add-on dependency issues; empty for
// configuration-wide issues such as a bad quantity.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	OptionID string `json:"option_id,omitempty"`
}

// Result reports validity plus every error and warning found. Warnings never
// affect Valid.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Configuration validates a configuration against its product.
func Configuration(cfg catalog.Configuration, product catalog.Product) Result {
	var errors, warnings []Issue

	for _, option := range product.Options {
		if option.DependsOn == nil {
			continue
		}
		if !catalog.Selected(cfg.Selections[option.ID]) {
			continue
		}
		dependencyValue := cfg.Selections[option.DependsOn.OptionID]
		if !catalog.EqualValues(dependencyValue, option.DependsOn.RequiredValue) {
			errors = append(errors, Issue{
				Code: CodeDependencyConflict,
				Message: fmt.Sprintf("%s requires %s to be %v",
					option.Name, option.DependsOn.OptionID, option.DependsOn.RequiredValue),
				OptionID: option.ID,
			})
		}
	}

	for _, addOnID := range cfg.AddOns {
		addOn, ok := product.AddOnByID(addOnID)
		if !ok || addOn.DependsOn == nil {
			continue
		}
		dependencyValue := cfg.Selections[addOn.DependsOn.OptionID]
		if !catalog.EqualValues(dependencyValue, addOn.DependsOn.RequiredValue) {
			errors = append(errors, Issue{
				Code:     CodeDependencyMissing,
				Message:  fmt.Sprintf("%s requires %s", addOn.Name, addOn.DependsOn.OptionID),
				OptionID: addOnID,
			})
		}
	}

	if cfg.Quantity < 1 {
		errors = append(errors, Issue{
			Code:    CodeInvalidQuantity,
			Message: "Quantity must be at least 1",
		})
	}

	if cfg.Quantity > highQuantityThreshold {
		warnings = append(warnings, Issue{
			Code:    CodeHighQuantity,
			Message: "Large orders may require additional processing time",
		})
	}

	return Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}
