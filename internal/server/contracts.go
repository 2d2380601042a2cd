package server

import (
	"context"

	"configureflow/internal/catalog"
	"configureflow/internal/pricing"
	"configureflow/internal/storage"
)

// ProductSource loads catalog data. The Postgres storage implements it; tests
// substitute an in-memory stub.
type ProductSource interface {
	GetProduct(ctx context.Context, productID string) (catalog.Product, error)
	ListProducts(ctx context.Context) ([]storage.ProductSummary, error)
}

// DraftStore persists per-owner configuration drafts.
type DraftStore interface {
	Save(ctx context.Context, owner string, cfg catalog.Configuration, name string) (catalog.Draft, error)
	Load(ctx context.Context, owner, draftID string) (catalog.Draft, bool, error)
	List(ctx context.Context, owner string) ([]catalog.Draft, error)
	Delete(ctx context.Context, owner, draftID string) (bool, error)
}

// OrderStore persists submitted orders.
type OrderStore interface {
	SaveOrder(ctx context.Context, order storage.Order) (int64, error)
}

// Notifier announces submitted orders to the admin channel. Optional; a nil
// notifier disables announcements.
type Notifier interface {
	NotifyOrderSubmitted(order storage.Order, breakdown pricing.Breakdown)
}
