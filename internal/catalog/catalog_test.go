package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		ID:        "lamp",
		Name:      "Desk Lamp",
		BasePrice: 40,
		Currency:  "USD",
		Options: []ProductOption{
			{
				ID:   "shade",
				Kind: KindSelect,
				Choices: []OptionChoice{
					{ID: "s1", Value: "linen", Available: true},
					{ID: "s2", Value: "glass", PriceModifier: 8, Available: true},
				},
			},
			{ID: "dimmer", Kind: KindToggle, DependsOn: &Dependency{OptionID: "shade", RequiredValue: "glass"}},
		},
		AddOns: []AddOn{
			{ID: "bulb", Name: "Smart Bulb", Price: 12, DependsOn: &Dependency{OptionID: "dimmer", RequiredValue: true}},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate(validProduct()))
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		want   string
	}{
		{
			"duplicate choice value",
			func(p *Product) { p.Options[0].Choices[1].Value = "linen" },
			"duplicate choice value",
		},
		{
			"duplicate option id",
			func(p *Product) { p.Options[1].ID = "shade" },
			"duplicate option id",
		},
		{
			"dangling option dependency",
			func(p *Product) { p.Options[1].DependsOn.OptionID = "missing" },
			"unknown option",
		},
		{
			"dangling add-on dependency",
			func(p *Product) { p.AddOns[0].DependsOn.OptionID = "missing" },
			"unknown option",
		},
		{
			"negative add-on price",
			func(p *Product) { p.AddOns[0].Price = -1 },
			"negative price",
		},
		{
			"negative base price",
			func(p *Product) { p.BasePrice = -10 },
			"negative base price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := Validate(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEqualValues(t *testing.T) {
	assert.True(t, EqualValues("oak", "oak"))
	assert.False(t, EqualValues("oak", "walnut"))
	assert.True(t, EqualValues(true, true))
	// JSON decoding turns numbers into float64; comparisons must not care.
	assert.True(t, EqualValues(5, float64(5)))
	assert.True(t, EqualValues(int64(3), 3))
	assert.False(t, EqualValues(5, "5"))
	assert.False(t, EqualValues(true, 1))
}

func TestSelected(t *testing.T) {
	assert.False(t, Selected(nil))
	assert.False(t, Selected(false))
	assert.False(t, Selected(""))
	assert.False(t, Selected(0))
	assert.False(t, Selected(0.0))
	assert.True(t, Selected(true))
	assert.True(t, Selected("oak"))
	assert.True(t, Selected(3))
}

func TestConfigurationClone(t *testing.T) {
	original := Configuration{
		ID:         "cfg",
		Selections: map[string]any{"shade": "glass"},
		AddOns:     []string{"bulb"},
		Quantity:   2,
	}

	snapshot := original.Clone()
	original.Selections["shade"] = "linen"
	original.AddOns[0] = "other"

	assert.Equal(t, "glass", snapshot.Selections["shade"])
	assert.Equal(t, []string{"bulb"}, snapshot.AddOns)
}
