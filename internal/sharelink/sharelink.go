// Package sharelink encodes a configuration into an opaque URL-safe string
// and back. Only the parts worth sharing travel: selections, add-on ids and
// quantity. Identity and timestamps stay local.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"configureflow/internal/catalog"
)

type payload struct {
	Selections map[string]any `json:"s"`
	AddOns     []string       `json:"a"`
	Quantity   int            `json:"q"`
}

// Decoded is the partial configuration carried by a share link.
type Decoded struct {
	Selections map[string]any
	AddOns     []string
	Quantity   int
}

// Encode serializes the shareable parts of a configuration.
func Encode(cfg catalog.Configuration) string {
	data, err := json.Marshal(payload{
		Selections: cfg.Selections,
		AddOns:     cfg.AddOns,
		Quantity:   cfg.Quantity,
	})
	if err != nil {
		// All payload fields are JSON-serializable scalars; this cannot
		// fail for configurations built by this module.
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// Decode parses a share link string. Malformed input yields an error and no
// partial data, so callers never apply garbage to a live configuration.
// Missing fields fall back to an empty selection set, no add-ons and
// quantity 1.
func Decode(encoded string) (Decoded, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return Decoded{}, fmt.Errorf("decode share link: %w", err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Decoded{}, fmt.Errorf("parse share link: %w", err)
	}

	out := Decoded{
		Selections: p.Selections,
		AddOns:     p.AddOns,
		Quantity:   p.Quantity,
	}
	if out.Selections == nil {
		out.Selections = map[string]any{}
	}
	if out.AddOns == nil {
		out.AddOns = []string{}
	}
	if out.Quantity == 0 {
		out.Quantity = 1
	}
	return out, nil
}
