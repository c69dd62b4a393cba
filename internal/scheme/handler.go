package scheme

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

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateSchemeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sch, err := h.service.Create(r.Context(), dto)
	if err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			config.Error(w, http.StatusBadRequest, verr.Error())
			return
		}
		log.WithError(err).Error("Failed to create scheme")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusCreated, sch)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	sch, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSchemeNotFound) {
			config.Error(w, http.StatusNotFound, "scheme not found")
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to fetch scheme")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, sch)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schemes, err := h.service.List(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to list schemes")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, schemes)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto UpdateSchemeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sch, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, ErrSchemeNotFound) {
			config.Error(w, http.StatusNotFound, "scheme not found")
			return
		}
		log.WithError(err).Error("Failed to update scheme")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, sch)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrSchemeNotFound) {
			config.Error(w, http.StatusNotFound, "scheme not found")
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to delete scheme")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
