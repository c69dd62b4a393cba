package examtemplate

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		config.Error(w, http.StatusNotFound, "examination template not found")
	case errors.As(err, &verr):
		config.Error(w, http.StatusBadRequest, verr.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Errorf("Failed to %s", action)
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, r, err, "create examination template")
		return
	}

	config.JSON(w, http.StatusCreated, t)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "fetch examination template")
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var schemeID *uuid.UUID
	if v := r.URL.Query().Get("schemeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid schemeId")
			return
		}
		schemeID = &id
	}

	templates, err := h.service.List(r.Context(), schemeID)
	if err != nil {
		writeServiceError(w, r, err, "list examination templates")
		return
	}

	config.JSON(w, http.StatusOK, templates)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto UpdateTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		writeServiceError(w, r, err, "update examination template")
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete examination template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
