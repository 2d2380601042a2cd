// Package storage persists the product catalog and submitted orders in
// PostgreSQL, with a Redis read-through cache for catalog lookups.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"configureflow/internal/catalog"
)

// ErrProductNotFound is returned for lookups of unknown product ids.
var ErrProductNotFound = errors.New("product not found")

const productCacheTTL = 24 * time.Hour

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type PostgresStorage struct {
	db     *sqlx.DB
	cache  *goredis.Client
	logger *zap.Logger
}

// Order is a submitted, priced configuration.
type Order struct {
	ID            int64
	ProductID     string
	Configuration catalog.Configuration
	Quantity      int
	Subtotal      float64
	Discount      float64
	Total         float64
	Currency      string
	Contact       string
	Status        string
	CreatedAt     time.Time
}

const OrderStatusNew = "new"

// NewPostgresStorage connects with an exponential-backoff retry policy;
// cache may be nil to disable catalog caching.
func NewPostgresStorage(ctx context.Context, cfg Config, cache *goredis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		cache:  cache,
		logger: logger,
	}, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

type productRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	BasePrice   float64 `db:"base_price"`
	Currency    string  `db:"currency"`
	ImageURL    string  `db:"image_url"`
}

type optionRow struct {
	ID            string          `db:"id"`
	ProductID     string          `db:"product_id"`
	Name          string          `db:"name"`
	Kind          string          `db:"kind"`
	Required      bool            `db:"required"`
	DefaultValue  json.RawMessage `db:"default_value"`
	MinQty        sql.NullInt64   `db:"min_qty"`
	MaxQty        sql.NullInt64   `db:"max_qty"`
	DependsOption sql.NullString  `db:"depends_on_option"`
	DependsValue  json.RawMessage `db:"depends_on_value"`
}

type choiceRow struct {
	ID            string         `db:"id"`
	OptionID      string         `db:"option_id"`
	Label         string         `db:"label"`
	Value         string         `db:"value"`
	PriceModifier float64        `db:"price_modifier"`
	ColorHex      sql.NullString `db:"color_hex"`
	Available     bool           `db:"available"`
}

type addOnRow struct {
	ID            string          `db:"id"`
	ProductID     string          `db:"product_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Price         float64         `db:"price"`
	DependsOption sql.NullString  `db:"depends_on_option"`
	DependsValue  json.RawMessage `db:"depends_on_value"`
}

// GetProduct loads a catalog product, Redis-cached. The assembled product is
// validated before it is handed out, so a catalog row with duplicate choice
// values or dangling dependencies never reaches a configurator session.
func (s *PostgresStorage) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	cacheKey := fmt.Sprintf("product:%s", productID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var product catalog.Product
			if err := json.Unmarshal(cached, &product); err == nil {
				return product, nil
			}
		}
	}

	var row productRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, description, base_price, currency, image_url FROM products WHERE id = $1`,
		productID)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product: %w", err)
	}

	product := catalog.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		BasePrice:   row.BasePrice,
		Currency:    row.Currency,
		ImageURL:    row.ImageURL,
	}

	var optionRows []optionRow
	err = s.db.SelectContext(ctx, &optionRows,
		`SELECT id, product_id, name, kind, required, default_value, min_qty, max_qty,
		        depends_on_option, depends_on_value
		 FROM product_options WHERE product_id = $1 ORDER BY position`,
		productID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product options: %w", err)
	}

	var choiceRows []choiceRow
	err = s.db.SelectContext(ctx, &choiceRows,
		`SELECT c.id, c.option_id, c.label, c.value, c.price_modifier, c.color_hex, c.available
		 FROM option_choices c
		 JOIN product_options o ON o.id = c.option_id
		 WHERE o.product_id = $1 ORDER BY c.option_id, c.position`,
		productID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get option choices: %w", err)
	}

	choicesByOption := make(map[string][]catalog.OptionChoice)
	for _, c := range choiceRows {
		choicesByOption[c.OptionID] = append(choicesByOption[c.OptionID], catalog.OptionChoice{
			ID:            c.ID,
			Label:         c.Label,
			Value:         c.Value,
			PriceModifier: c.PriceModifier,
			ColorHex:      c.ColorHex.String,
			Available:     c.Available,
		})
	}

	for _, o := range optionRows {
		option := catalog.ProductOption{
			ID:       o.ID,
			Name:     o.Name,
			Kind:     catalog.OptionKind(o.Kind),
			Required: o.Required,
			Choices:  choicesByOption[o.ID],
		}
		if len(o.DefaultValue) > 0 {
			if err := json.Unmarshal(o.DefaultValue, &option.DefaultValue); err != nil {
				return catalog.Product{}, fmt.Errorf("option %s: bad default value: %w", o.ID, err)
			}
		}
		if o.MinQty.Valid {
			v := int(o.MinQty.Int64)
			option.Min = &v
		}
		if o.MaxQty.Valid {
			v := int(o.MaxQty.Int64)
			option.Max = &v
		}
		dep, err := dependency(o.DependsOption, o.DependsValue)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("option %s: %w", o.ID, err)
		}
		option.DependsOn = dep
		product.Options = append(product.Options, option)
	}

	var addOnRows []addOnRow
	err = s.db.SelectContext(ctx, &addOnRows,
		`SELECT id, product_id, name, description, price, depends_on_option, depends_on_value
		 FROM add_ons WHERE product_id = $1 ORDER BY position`,
		productID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get add-ons: %w", err)
	}

	for _, a := range addOnRows {
		addOn := catalog.AddOn{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Price:       a.Price,
		}
		dep, err := dependency(a.DependsOption, a.DependsValue)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("add-on %s: %w", a.ID, err)
		}
		addOn.DependsOn = dep
		product.AddOns = append(product.AddOns, addOn)
	}

	if err := catalog.Validate(product); err != nil {
		return catalog.Product{}, fmt.Errorf("invalid catalog data: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(product); err == nil {
			s.cache.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}

	return product, nil
}

func dependency(optionID sql.NullString, rawValue json.RawMessage) (*catalog.Dependency, error) {
	if !optionID.Valid {
		return nil, nil
	}
	dep := &catalog.Dependency{OptionID: optionID.String}
	if len(rawValue) > 0 {
		if err := json.Unmarshal(rawValue, &dep.RequiredValue); err != nil {
			return nil, fmt.Errorf("bad dependency value: %w", err)
		}
	}
	return dep, nil
}

// ProductSummary is a catalog listing entry.
type ProductSummary struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	BasePrice float64 `db:"base_price" json:"base_price"`
	Currency  string  `db:"currency" json:"currency"`
	ImageURL  string  `db:"image_url" json:"image_url"`
}

func (s *PostgresStorage) ListProducts(ctx context.Context) ([]ProductSummary, error) {
	var products []ProductSummary
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, base_price, currency, image_url FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// SaveOrder persists a submitted order and returns its id.
func (s *PostgresStorage) SaveOrder(ctx context.Context, order Order) (int64, error) {
	configJSON, err := json.Marshal(order.Configuration)
	if err != nil {
		return 0, fmt.Errorf("marshal configuration: %w", err)
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	const query = `
        INSERT INTO orders (
            product_id, configuration, quantity, subtotal, discount,
            total, currency, contact, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `

	var orderID int64
	err = s.db.QueryRowContext(ctx, query,
		order.ProductID,
		configJSON,
		order.Quantity,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.Currency,
		order.Contact,
		order.Status,
		order.CreatedAt,
	).Scan(&orderID)

	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	return orderID, nil
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}
