package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"configureflow/internal/catalog"
)

func intPtr(v int) *int { return &v }

func chairProduct() catalog.Product {
	return catalog.Product{
		ID:        "chair-ergo",
		Name:      "Ergo Chair",
		BasePrice: 320,
		Currency:  "USD",
		Options: []catalog.ProductOption{
			{
				ID:           "fabric",
				Name:         "Fabric",
				Kind:         catalog.KindSelect,
				DefaultValue: "mesh",
				Choices: []catalog.OptionChoice{
					{ID: "f-mesh", Label: "Mesh", Value: "mesh", Available: true},
					{ID: "f-leather", Label: "Leather", Value: "leather", PriceModifier: 80, Available: true},
				},
			},
			{
				ID:   "color",
				Name: "Color",
				Kind: catalog.KindColor,
				Choices: []catalog.OptionChoice{
					{ID: "c-red", Label: "Red", Value: "red", Available: false},
					{ID: "c-black", Label: "Black", Value: "black", Available: true},
				},
			},
			{ID: "qty", Name: "Quantity", Kind: catalog.KindQuantity, Min: intPtr(1), Max: intPtr(50)},
		},
		AddOns: []catalog.AddOn{
			{ID: "headrest", Name: "Headrest", Price: 45,
				DependsOn: &catalog.Dependency{OptionID: "fabric", RequiredValue: "leather"}},
			{ID: "casters", Name: "Soft Casters", Price: 20},
		},
	}
}

func TestNew_DefaultSelections(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	snapshot := c.Snapshot()

	// Explicit default wins; otherwise the first available choice.
	assert.Equal(t, "mesh", snapshot.Selections["fabric"])
	assert.Equal(t, "black", snapshot.Selections["color"])
	assert.Equal(t, 1, snapshot.Quantity)
	assert.Empty(t, snapshot.AddOns)
	assert.NotEmpty(t, snapshot.ID)
}

func TestToggleAddOn(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())

	require.NoError(t, c.ToggleAddOn("casters"))
	assert.Equal(t, []string{"casters"}, c.Snapshot().AddOns)

	// Toggling again removes it.
	require.NoError(t, c.ToggleAddOn("casters"))
	assert.Empty(t, c.Snapshot().AddOns)

	// Gated add-on refuses while the dependency is unmet.
	require.ErrorIs(t, c.ToggleAddOn("headrest"), ErrAddOnUnavailable)

	c.SetOption("fabric", "leather")
	require.NoError(t, c.ToggleAddOn("headrest"))
	assert.Equal(t, []string{"headrest"}, c.Snapshot().AddOns)

	require.ErrorIs(t, c.ToggleAddOn("cupholder"), ErrUnknownAddOn)
}

func TestSetOption_PrunesDependentAddOns(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	c.SetOption("fabric", "leather")
	require.NoError(t, c.ToggleAddOn("headrest"))
	require.NoError(t, c.ToggleAddOn("casters"))

	before := c.Snapshot()

	c.SetOption("fabric", "mesh")

	after := c.Snapshot()
	assert.Equal(t, []string{"casters"}, after.AddOns, "violated add-on is dropped")

	// The earlier snapshot must be untouched: pruning builds a fresh slice.
	assert.Equal(t, []string{"headrest", "casters"}, before.AddOns)
}

func TestSetQuantity_Clamps(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())

	c.SetQuantity(0)
	assert.Equal(t, 1, c.Snapshot().Quantity)

	c.SetQuantity(200)
	assert.Equal(t, 50, c.Snapshot().Quantity)

	c.SetQuantity(12)
	assert.Equal(t, 12, c.Snapshot().Quantity)
}

func TestSetQuantity_FallbackBounds(t *testing.T) {
	product := chairProduct()
	product.Options = product.Options[:2] // no quantity option
	c := New(product, zap.NewNop())

	c.SetQuantity(-3)
	assert.Equal(t, 1, c.Snapshot().Quantity)
	c.SetQuantity(5000)
	assert.Equal(t, 999, c.Snapshot().Quantity)
}

func TestSnapshot_IsIsolated(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	require.NoError(t, c.ToggleAddOn("casters"))

	snapshot := c.Snapshot()
	c.SetOption("fabric", "leather")
	c.SetQuantity(9)
	require.NoError(t, c.ToggleAddOn("casters"))

	assert.Equal(t, "mesh", snapshot.Selections["fabric"])
	assert.Equal(t, 1, snapshot.Quantity)
	assert.Equal(t, []string{"casters"}, snapshot.AddOns)
}

func TestApply(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	id := c.Snapshot().ID

	c.Apply(map[string]any{"fabric": "leather"}, []string{"headrest"}, 120)

	snapshot := c.Snapshot()
	assert.Equal(t, id, snapshot.ID, "identity survives an apply")
	assert.Equal(t, "leather", snapshot.Selections["fabric"])
	assert.Equal(t, []string{"headrest"}, snapshot.AddOns)
	assert.Equal(t, 50, snapshot.Quantity, "applied quantity is clamped")
}

func TestReset(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	c.SetOption("fabric", "leather")
	require.NoError(t, c.ToggleAddOn("headrest"))
	c.SetQuantity(30)
	require.True(t, c.Dirty())

	c.Reset()

	snapshot := c.Snapshot()
	assert.Equal(t, "mesh", snapshot.Selections["fabric"])
	assert.Empty(t, snapshot.AddOns)
	assert.Equal(t, 1, snapshot.Quantity)
	assert.False(t, c.Dirty())
}

func TestDirtyTracking(t *testing.T) {
	c := New(chairProduct(), zap.NewNop())
	assert.False(t, c.Dirty())

	c.SetQuantity(2)
	assert.True(t, c.Dirty())

	c.MarkSaved()
	assert.False(t, c.Dirty())
}
