package questiongen

import (
	"encoding/json"
	"net/http"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateDrafts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		config.Error(w, http.StatusBadRequest, "topic is required")
		return
	}

	drafts, err := h.service.GenerateDrafts(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Failed to generate draft questions")
		config.Error(w, http.StatusInternalServerError, "failed to generate draft questions")
		return
	}

	config.JSON(w, http.StatusCreated, drafts)
}
