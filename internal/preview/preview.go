// Package preview builds preview image references for configurations.
// Purely cosmetic: a real deployment would composite layers server-side,
// here the product image gets a cache-busting query string per
// configuration. Callers fall back to the plain product image on failure.
package preview

import (
	"fmt"
	"net/url"
	"time"

	"configureflow/internal/catalog"
)

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate returns an image reference for the configuration. Fails only
// when the product carries no image at all.
func (g *Generator) Generate(cfg catalog.Configuration, product catalog.Product) (string, error) {
	if product.ImageURL == "" {
		return "", fmt.Errorf("product %s has no image", product.ID)
	}

	base, err := url.Parse(product.ImageURL)
	if err != nil {
		return "", fmt.Errorf("parse product image url: %w", err)
	}

	q := base.Query()
	q.Set("config", cfg.ID)
	q.Set("t", fmt.Sprintf("%d", g.now().UnixMilli()))
	base.RawQuery = q.Encode()

	return base.String(), nil
}
