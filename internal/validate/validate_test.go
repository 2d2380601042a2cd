package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"configureflow/internal/catalog"
)

func standingDesk() catalog.Product {
	return catalog.Product{
		ID:        "desk-pro",
		Name:      "Pro Standing Desk",
		BasePrice: 450.0,
		Currency:  "USD",
		Options: []catalog.ProductOption{
			{
				ID:   "frame",
				Name: "Frame",
				Kind: catalog.KindSelect,
				Choices: []catalog.OptionChoice{
					{ID: "frame-std", Label: "Standard", Value: "standard", Available: true},
					{ID: "frame-motor", Label: "Motorized", Value: "motorized", PriceModifier: 120, Available: true},
				},
			},
			{
				ID:   "memory-presets",
				Name: "Memory Presets",
				Kind: catalog.KindToggle,
				// Only meaningful on the motorized frame.
				DependsOn: &catalog.Dependency{OptionID: "frame", RequiredValue: "motorized"},
			},
			{ID: "qty", Name: "Quantity", Kind: catalog.KindQuantity},
		},
		AddOns: []catalog.AddOn{
			{ID: "controller", Name: "Touch Controller", Price: 60,
				DependsOn: &catalog.Dependency{OptionID: "frame", RequiredValue: "motorized"}},
			{ID: "mat", Name: "Anti-Fatigue Mat", Price: 35},
		},
	}
}

func cfg(selections map[string]any, addOns []string, quantity int) catalog.Configuration {
	return catalog.Configuration{
		ID:         "cfg-1",
		ProductID:  "desk-pro",
		Selections: selections,
		AddOns:     addOns,
		Quantity:   quantity,
	}
}

func TestConfiguration_Valid(t *testing.T) {
	result := Configuration(cfg(
		map[string]any{"frame": "motorized", "memory-presets": true},
		[]string{"controller", "mat"},
		5,
	), standingDesk())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestConfiguration_OptionDependencyConflict(t *testing.T) {
	result := Configuration(cfg(
		map[string]any{"frame": "standard", "memory-presets": true},
		nil,
		1,
	), standingDesk())

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeDependencyConflict, result.Errors[0].Code)
	assert.Equal(t, "memory-presets", result.Errors[0].OptionID)
}

func TestConfiguration_UnselectedDependentOptionIgnored(t *testing.T) {
	// The dependent option has no selection, so no conflict is reported.
	result := Configuration(cfg(
		map[string]any{"frame": "standard"},
		nil,
		1,
	), standingDesk())

	assert.True(t, result.Valid)
}

func TestConfiguration_AddOnDependencyMissing(t *testing.T) {
	tests := []struct {
		name       string
		selections map[string]any
	}{
		{"dependency unset", map[string]any{}},
		{"dependency mismatched", map[string]any{"frame": "standard"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Configuration(cfg(tt.selections, []string{"controller"}, 1), standingDesk())

			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, CodeDependencyMissing, result.Errors[0].Code)
			assert.Equal(t, "controller", result.Errors[0].OptionID)
		})
	}
}

func TestConfiguration_QuantityBounds(t *testing.T) {
	product := standingDesk()

	result := Configuration(cfg(map[string]any{}, nil, 0), product)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeInvalidQuantity, result.Errors[0].Code)
	assert.Empty(t, result.Errors[0].OptionID)

	result = Configuration(cfg(map[string]any{}, nil, 48), product)
	assert.True(t, result.Valid, "warnings must not affect validity")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeHighQuantity, result.Warnings[0].Code)

	result = Configuration(cfg(map[string]any{}, nil, 47), product)
	assert.Empty(t, result.Warnings)
}

func TestConfiguration_AccumulatesAllIssues(t *testing.T) {
	result := Configuration(cfg(
		map[string]any{"frame": "standard", "memory-presets": true},
		[]string{"controller"},
		0,
	), standingDesk())

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 3)
	codes := []string{result.Errors[0].Code, result.Errors[1].Code, result.Errors[2].Code}
	assert.Equal(t, []string{CodeDependencyConflict, CodeDependencyMissing, CodeInvalidQuantity}, codes)
}
