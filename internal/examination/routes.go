package examination

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListByApplication)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Post("/{id}/start", h.Start)
	r.Post("/{id}/submit", h.Submit)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRoles(auth.RoleAdmin, auth.RoleAssessor))

		r.Post("/{id}/questions", h.AttachQuestions)
		r.Post("/{id}/questions/{questionID}/grade", h.GradeQuestion)
		r.Post("/{id}/evaluate", h.Evaluate)
	})

	return r
}
