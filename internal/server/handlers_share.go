package server

import (
	"net/http"

	"go.uber.org/zap"

	"configureflow/internal/sharelink"
)

func (s *Server) handleEncodeShare(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"code": sharelink.Encode(req.configuration()),
	})
}

func (s *Server) handleDecodeShare(w http.ResponseWriter, r *http.Request) {
	decoded, err := sharelink.Decode(r.PathValue("code"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed share code")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"selections": decoded.Selections,
		"add_ons":    decoded.AddOns,
		"quantity":   decoded.Quantity,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, ok := s.product(w, r, req.ProductID)
	if !ok {
		return
	}

	url, err := s.preview.Generate(req.configuration(), product)
	if err != nil {
		s.logger.Warn("Preview unavailable",
			zap.String("product_id", req.ProductID),
			zap.Error(err))
		s.writeError(w, http.StatusUnprocessableEntity, "product has no preview image")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
