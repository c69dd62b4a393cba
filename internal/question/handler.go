package question

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
	log := config.WithContext(r.Context())

	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, ErrQuestionNotFound):
		config.Error(w, http.StatusNotFound, "question not found")
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidAnswerKey), errors.As(err, &verr):
		config.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, r, err, "create question")
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "fetch question")
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter ListFilter

	if v := r.URL.Query().Get("schemeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid schemeId")
			return
		}
		filter.SchemeID = &id
	}
	if v := r.URL.Query().Get("unitId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid unitId")
			return
		}
		filter.UnitID = &id
	}
	filter.ActiveOnly = r.URL.Query().Get("active") == "true"

	questions, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "list questions")
		return
	}

	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto UpdateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		writeServiceError(w, r, err, "update question")
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
