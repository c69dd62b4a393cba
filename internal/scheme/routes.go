package scheme

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRoles(auth.RoleAdmin))

		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
