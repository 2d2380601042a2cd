package server

import (
	"net/http"

	"go.uber.org/zap"
)

type saveDraftRequest struct {
	configurationRequest
	Name string `json:"name"`
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req saveDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// The draft must belong to a real product; a typo in the frontend should
	// not produce an unloadable draft.
	if _, ok := s.product(w, r, req.ProductID); !ok {
		return
	}

	draft, err := s.drafts.Save(r.Context(), ownerID, req.configuration(), req.Name)
	if err != nil {
		s.logger.Error("Failed to save draft",
			zap.String("owner", ownerID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save draft")
		return
	}

	s.writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	drafts, err := s.drafts.List(r.Context(), ownerID)
	if err != nil {
		s.logger.Error("Failed to list drafts",
			zap.String("owner", ownerID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list drafts")
		return
	}

	s.writeJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	draft, found, err := s.drafts.Load(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		s.logger.Error("Failed to load draft",
			zap.String("owner", ownerID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}
	if !found {
		s.writeError(w, http.StatusNotFound, "draft not found")
		return
	}

	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	deleted, err := s.drafts.Delete(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		s.logger.Error("Failed to delete draft",
			zap.String("owner", ownerID),
			zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete draft")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "draft not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
