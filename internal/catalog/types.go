package catalog

import "time"

// OptionKind distinguishes how a product option is presented and what kind
// of value its selection carries.
type OptionKind string

const (
	KindSelect   OptionKind = "select"
	KindColor    OptionKind = "color"
	KindQuantity OptionKind = "quantity"
	KindToggle   OptionKind = "toggle"
)

// Product is a catalog entity. Immutable for the lifetime of a configurator
// session; nothing in this module ever writes to it after load.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	BasePrice   float64         `json:"base_price" db:"base_price"`
	Currency    string          `json:"currency" db:"currency"`
	Options     []ProductOption `json:"options"`
	AddOns      []AddOn         `json:"add_ons"`
	ImageURL    string          `json:"image_url" db:"image_url"`
}

type ProductOption struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Kind         OptionKind     `json:"kind"`
	Required     bool           `json:"required"`
	Choices      []OptionChoice `json:"choices,omitempty"`
	DefaultValue any            `json:"default_value,omitempty"`
	Min          *int           `json:"min,omitempty"`
	Max          *int           `json:"max,omitempty"`
	DependsOn    *Dependency    `json:"depends_on,omitempty"`
}

type OptionChoice struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Value         string  `json:"value"`
	PriceModifier float64 `json:"price_modifier"`
	ColorHex      string  `json:"color_hex,omitempty"`
	Available     bool    `json:"available"`
}

// Dependency gates an option or add-on on another option holding a specific
// value.
type Dependency struct {
	OptionID      string `json:"option_id"`
	RequiredValue any    `json:"required_value"`
}

type AddOn struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	DependsOn   *Dependency `json:"depends_on,omitempty"`
}

// Configuration is a user's in-progress selection against one product.
// Selection values are strings for select/color options, bools for toggles
// and numbers for quantity-kind options. Pricing and validation consume
// configurations read-only; only the configurator controller mutates one.
type Configuration struct {
	ID         string         `json:"id"`
	ProductID  string         `json:"product_id"`
	Selections map[string]any `json:"selections"`
	AddOns     []string       `json:"add_ons"`
	Quantity   int            `json:"quantity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Name       string         `json:"name,omitempty"`
}

// Clone returns a deep copy of the configuration so callers can hold a
// snapshot that later edits cannot touch.
func (c Configuration) Clone() Configuration {
	out := c
	out.Selections = make(map[string]any, len(c.Selections))
	for k, v := range c.Selections {
		out.Selections[k] = v
	}
	out.AddOns = append([]string(nil), c.AddOns...)
	return out
}

// Draft is a named snapshot of a configuration. Immutable once stored.
type Draft struct {
	ID            string        `json:"id"`
	Configuration Configuration `json:"configuration"`
	SavedAt       time.Time     `json:"saved_at"`
	Name          string        `json:"name"`
}

// Option returns the product option with the given id.
func (p Product) Option(id string) (ProductOption, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ProductOption{}, false
}

// AddOnByID returns the add-on with the given id.
func (p Product) AddOnByID(id string) (AddOn, bool) {
	for _, a := range p.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// QuantityOption returns the first quantity-kind option, if any.
func (p Product) QuantityOption() (ProductOption, bool) {
	for _, o := range p.Options {
		if o.Kind == KindQuantity {
			return o, true
		}
	}
	return ProductOption{}, false
}
