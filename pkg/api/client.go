// Package api is the client for the upstream pricing backend. Deployments
// that price server-side plug this in as the quoter; everything else uses
// the in-process engine.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"configureflow/internal/catalog"
	"configureflow/internal/quote"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetProduct fetches a catalog product from the backend.
func (c *Client) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/api/products/%s", c.baseURL, productID),
		nil,
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return catalog.Product{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var product catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return catalog.Product{}, fmt.Errorf("decode response: %w", err)
	}

	return product, nil
}

type priceRequest struct {
	Configuration catalog.Configuration `json:"configuration"`
	ProductID     string                `json:"product_id"`
}

// Quote asks the backend to price a configuration, retrying transient
// failures with exponential backoff inside the request's context. Satisfies
// quote.Quoter.
func (c *Client) Quote(ctx context.Context, cfg catalog.Configuration, product catalog.Product) (quote.Quote, error) {
	body, err := json.Marshal(priceRequest{Configuration: cfg, ProductID: product.ID})
	if err != nil {
		return quote.Quote{}, fmt.Errorf("marshal request: %w", err)
	}

	var result quote.Quote

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 15 * time.Second

	err = backoff.Retry(func() error {
		httpReq, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			fmt.Sprintf("%s/api/price", c.baseURL),
			bytes.NewReader(body),
		)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500:
			return fmt.Errorf("backend status: %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status: %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}, backoff.WithContext(retryPolicy, ctx))

	if err != nil {
		return quote.Quote{}, err
	}

	return result, nil
}
