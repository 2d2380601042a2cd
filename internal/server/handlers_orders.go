package server

import (
	"net/http"

	"go.uber.org/zap"

	"configureflow/internal/pricing"
	"configureflow/internal/storage"
	"configureflow/internal/validate"
	"configureflow/pkg/currency"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.product(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}

type submitOrderRequest struct {
	configurationRequest
	Contact string `json:"contact"`
}

type submitOrderResponse struct {
	OrderID        int64            `json:"order_id"`
	Total          float64          `json:"total"`
	FormattedTotal string           `json:"formatted_total"`
	Warnings       []validate.Issue `json:"warnings,omitempty"`
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Contact == "" {
		s.writeError(w, http.StatusBadRequest, "contact is required")
		return
	}

	product, ok := s.product(w, r, req.ProductID)
	if !ok {
		return
	}

	cfg := req.configuration()

	// Invalid configurations never reach storage. Warnings ride along in the
	// response but do not block.
	result := validate.Configuration(cfg, product)
	if !result.Valid {
		s.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	breakdown := pricing.ComputeBreakdown(cfg, product)

	order := storage.Order{
		ProductID:     product.ID,
		Configuration: cfg,
		Quantity:      cfg.Quantity,
		Subtotal:      pricing.RoundToCents(breakdown.Subtotal),
		Discount:      pricing.RoundToCents(breakdown.QuantityDiscount),
		Total:         pricing.RoundToCents(breakdown.Total),
		Currency:      product.Currency,
		Contact:       req.Contact,
		Status:        storage.OrderStatusNew,
	}

	orderID, err := s.orders.SaveOrder(r.Context(), order)
	if err != nil {
		s.logger.Error("Failed to save order",
			zap.String("product_id", product.ID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save order")
		return
	}
	order.ID = orderID

	s.logger.Info("Order submitted",
		zap.Int64("order_id", orderID),
		zap.String("product_id", product.ID),
		zap.Float64("total", order.Total))

	if s.notifier != nil {
		go s.notifier.NotifyOrderSubmitted(order, breakdown)
	}

	s.writeJSON(w, http.StatusCreated, submitOrderResponse{
		OrderID:        orderID,
		Total:          order.Total,
		FormattedTotal: currency.Format(order.Total, product.Currency),
		Warnings:       result.Warnings,
	})
}
