// Package server exposes the configurator over HTTP: pricing, validation,
// drafts, share links, previews and order submission. Handlers are thin;
// all domain rules live in the pricing, validate, configurator and quote
// packages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"configureflow/internal/catalog"
	"configureflow/internal/preview"
	"configureflow/internal/quote"
	"configureflow/internal/storage"
)

type Server struct {
	products ProductSource
	drafts   DraftStore
	orders   OrderStore
	quoter   quote.Quoter
	notifier Notifier
	preview  *preview.Generator
	logger   *zap.Logger
}

func New(products ProductSource, drafts DraftStore, orders OrderStore, quoter quote.Quoter, notifier Notifier, logger *zap.Logger) *Server {
	return &Server{
		products: products,
		drafts:   drafts,
		orders:   orders,
		quoter:   quoter,
		notifier: notifier,
		preview:  preview.NewGenerator(),
		logger:   logger,
	}
}

// Router wires every endpoint. Method and path matching is left to the mux
// patterns so handlers never re-check either.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)

	mux.HandleFunc("POST /api/price", s.handlePrice)
	mux.HandleFunc("POST /api/validate", s.handleValidate)

	mux.HandleFunc("GET /api/drafts", s.handleListDrafts)
	mux.HandleFunc("POST /api/drafts", s.handleSaveDraft)
	mux.HandleFunc("GET /api/drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("DELETE /api/drafts/{id}", s.handleDeleteDraft)

	mux.HandleFunc("POST /api/share", s.handleEncodeShare)
	mux.HandleFunc("GET /api/share/{code}", s.handleDecodeShare)

	mux.HandleFunc("POST /api/preview", s.handlePreview)

	mux.HandleFunc("POST /api/orders", s.handleSubmitOrder)

	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("HTTP server started", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// product loads the product a request names, mapping absence to 404 and
// everything else to 500. The bool reports whether the response was already
// written.
func (s *Server) product(w http.ResponseWriter, r *http.Request, productID string) (catalog.Product, bool) {
	if productID == "" {
		s.writeError(w, http.StatusBadRequest, "product_id is required")
		return catalog.Product{}, false
	}
	product, err := s.products.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			s.writeError(w, http.StatusNotFound, "product not found")
			return catalog.Product{}, false
		}
		s.logger.Error("Failed to load product",
			zap.String("product_id", productID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load product")
		return catalog.Product{}, false
	}
	return product, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, `{"error":"malformed request body"}`, http.StatusBadRequest)
		return false
	}
	return true
}

// owner identifies the draft list a request operates on. Drafts are scoped
// per browser session or account, carried in a header the frontend sets.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-Owner-ID")
	if id == "" {
		http.Error(w, `{"error":"X-Owner-ID header is required"}`, http.StatusBadRequest)
		return "", false
	}
	return id, true
}
