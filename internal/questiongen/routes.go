package questiongen

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.RequireRoles(auth.RoleAdmin))

	r.Post("/", h.GenerateDrafts)
	return r
}
