package server

import (
	"net/http"

	"go.uber.org/zap"

	"configureflow/internal/catalog"
	"configureflow/internal/pricing"
	"configureflow/internal/validate"
)

// configurationRequest is the wire shape every configuration-carrying
// endpoint accepts.
type configurationRequest struct {
	ProductID  string         `json:"product_id"`
	Selections map[string]any `json:"selections"`
	AddOns     []string       `json:"add_ons"`
	Quantity   int            `json:"quantity"`
}

func (r configurationRequest) configuration() catalog.Configuration {
	selections := r.Selections
	if selections == nil {
		selections = map[string]any{}
	}
	return catalog.Configuration{
		ProductID:  r.ProductID,
		Selections: selections,
		AddOns:     r.AddOns,
		Quantity:   r.Quantity,
	}
}

type nextTierResponse struct {
	Needed          int     `json:"needed"`
	DiscountPercent float64 `json:"discount_percent"`
}

type priceResponse struct {
	Breakdown       pricing.Breakdown `json:"breakdown"`
	FormattedTotal  string            `json:"formatted_total"`
	DiscountPercent float64           `json:"discount_percent"`
	NextTier        *nextTierResponse `json:"next_tier,omitempty"`
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, ok := s.product(w, r, req.ProductID)
	if !ok {
		return
	}

	result, err := s.quoter.Quote(r.Context(), req.configuration(), product)
	if err != nil {
		s.logger.Error("Failed to price configuration",
			zap.String("product_id", req.ProductID),
			zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "pricing unavailable")
		return
	}

	resp := priceResponse{
		Breakdown:       roundBreakdown(result.Breakdown),
		FormattedTotal:  result.FormattedTotal,
		DiscountPercent: pricing.AppliedDiscountPercent(req.Quantity),
	}
	if tier, ok := pricing.NextTierFor(req.Quantity); ok {
		resp.NextTier = &nextTierResponse{
			Needed:          tier.Needed,
			DiscountPercent: tier.DiscountPercent,
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, ok := s.product(w, r, req.ProductID)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, validate.Configuration(req.configuration(), product))
}

// roundBreakdown rounds every amount to cents for the response. Internal
// arithmetic stays unrounded; the wire is a display boundary.
func roundBreakdown(b pricing.Breakdown) pricing.Breakdown {
	b.BasePrice = pricing.RoundToCents(b.BasePrice)
	b.OptionModifiers = append([]pricing.OptionModifier(nil), b.OptionModifiers...)
	for i := range b.OptionModifiers {
		b.OptionModifiers[i].Amount = pricing.RoundToCents(b.OptionModifiers[i].Amount)
	}
	b.AddOnCosts = append([]pricing.AddOnCost(nil), b.AddOnCosts...)
	for i := range b.AddOnCosts {
		b.AddOnCosts[i].Amount = pricing.RoundToCents(b.AddOnCosts[i].Amount)
	}
	b.Subtotal = pricing.RoundToCents(b.Subtotal)
	b.QuantityDiscount = pricing.RoundToCents(b.QuantityDiscount)
	b.Total = pricing.RoundToCents(b.Total)
	return b
}
