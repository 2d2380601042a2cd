// Package configurator owns the mutable configuration state for one product
// session: option selections, the add-on set and the quantity. Pricing and
// validation only ever see immutable snapshots taken from here.
package configurator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"configureflow/internal/catalog"
)

// ErrAddOnUnavailable is returned when toggling an add-on whose dependency
// option is not in the required state.
var ErrAddOnUnavailable = errors.New("add-on unavailable for current selections")

// ErrUnknownAddOn is returned when toggling an add-on the product does not
// carry.
var ErrUnknownAddOn = errors.New("unknown add-on")

// Fallback quantity bounds when the product has no quantity option or leaves
// min/max unset.
const (
	defaultMinQuantity = 1
	defaultMaxQuantity = 999
)

type Configurator struct {
	product catalog.Product
	logger  *zap.Logger

	mu         sync.Mutex
	id         string
	selections map[string]any
	addOns     []string
	quantity   int
	createdAt  time.Time
	updatedAt  time.Time
	dirty      bool
}

// New creates a configurator for a product, seeded with the product's
// default selections and quantity 1.
func New(product catalog.Product, logger *zap.Logger) *Configurator {
	now := time.Now().UTC()
	return &Configurator{
		product:    product,
		logger:     logger,
		id:         uuid.NewString(),
		selections: DefaultSelections(product),
		addOns:     []string{},
		quantity:   1,
		createdAt:  now,
		updatedAt:  now,
	}
}

// DefaultSelections builds the initial selection map: an option's explicit
// default if present, otherwise its first available choice.
func DefaultSelections(product catalog.Product) map[string]any {
	selections := make(map[string]any, len(product.Options))
	for _, option := range product.Options {
		if option.DefaultValue != nil {
			selections[option.ID] = option.DefaultValue
			continue
		}
		for _, choice := range option.Choices {
			if choice.Available {
				selections[option.ID] = choice.Value
				break
			}
		}
	}
	return selections
}

// SetOption records a selection for an option. Add-ons whose dependency is
// violated by the new value are removed, into a freshly built slice so that
// snapshots handed out earlier are never mutated underneath their holders.
func (c *Configurator) SetOption(optionID string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selections[optionID] = value
	c.touch()

	kept := make([]string, 0, len(c.addOns))
	for _, id := range c.addOns {
		addOn, ok := c.product.AddOnByID(id)
		if ok && addOn.DependsOn != nil && addOn.DependsOn.OptionID == optionID &&
			!catalog.EqualValues(value, addOn.DependsOn.RequiredValue) {
			c.logger.Debug("dropping add-on after option change",
				zap.String("add_on", id),
				zap.String("option", optionID))
			continue
		}
		kept = append(kept, id)
	}
	c.addOns = kept
}

// ToggleAddOn adds or removes an add-on. Toggling on an add-on whose
// dependency is not satisfied fails; toggling off always succeeds. The
// toggle is what keeps the add-on set duplicate-free.
func (c *Configurator) ToggleAddOn(addOnID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	addOn, ok := c.product.AddOnByID(addOnID)
	if !ok {
		return ErrUnknownAddOn
	}

	for i, id := range c.addOns {
		if id == addOnID {
			c.addOns = append(append([]string{}, c.addOns[:i]...), c.addOns[i+1:]...)
			c.touch()
			return nil
		}
	}

	if addOn.DependsOn != nil &&
		!catalog.EqualValues(c.selections[addOn.DependsOn.OptionID], addOn.DependsOn.RequiredValue) {
		return ErrAddOnUnavailable
	}

	c.addOns = append(append([]string{}, c.addOns...), addOnID)
	c.touch()
	return nil
}

// SetQuantity clamps the requested quantity to the product's quantity-option
// bounds and records it.
func (c *Configurator) SetQuantity(quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	min, max := defaultMinQuantity, defaultMaxQuantity
	if option, ok := c.product.QuantityOption(); ok {
		if option.Min != nil {
			min = *option.Min
		}
		if option.Max != nil {
			max = *option.Max
		}
	}

	if quantity < min {
		quantity = min
	}
	if quantity > max {
		quantity = max
	}
	c.quantity = quantity
	c.touch()
}

// Apply overlays a decoded share link or loaded draft onto the session:
// selections, add-ons and quantity only, identity and timestamps stay.
// Quantity goes through the usual clamping.
func (c *Configurator) Apply(selections map[string]any, addOns []string, quantity int) {
	c.mu.Lock()
	fresh := make(map[string]any, len(selections))
	for k, v := range selections {
		fresh[k] = v
	}
	c.selections = fresh
	c.addOns = append([]string{}, addOns...)
	c.touch()
	c.mu.Unlock()

	c.SetQuantity(quantity)
}

// Reset restores defaults: default selections, no add-ons, quantity 1.
func (c *Configurator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selections = DefaultSelections(c.product)
	c.addOns = []string{}
	c.quantity = 1
	c.dirty = false
	c.updatedAt = time.Now().UTC()
}

// Snapshot returns an immutable copy of the current configuration. Every
// price or validation request operates on such a snapshot, captured at
// issuance time.
func (c *Configurator) Snapshot() catalog.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return catalog.Configuration{
		ID:         c.id,
		ProductID:  c.product.ID,
		Selections: c.selections,
		AddOns:     c.addOns,
		Quantity:   c.quantity,
		CreatedAt:  c.createdAt,
		UpdatedAt:  c.updatedAt,
	}.Clone()
}

// Dirty reports whether the configuration changed since the last save.
func (c *Configurator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// MarkSaved clears the dirty flag after a successful draft save.
func (c *Configurator) MarkSaved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

func (c *Configurator) touch() {
	c.updatedAt = time.Now().UTC()
	c.dirty = true
}
