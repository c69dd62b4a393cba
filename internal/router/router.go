package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
	"github.com/fikshb/LSPLMS-sub000/internal/examination"
	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/middlewares"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
	"github.com/fikshb/LSPLMS-sub000/internal/questiongen"
	"github.com/fikshb/LSPLMS-sub000/internal/scheme"
)

type RouterConfig struct {
	SchemeHandler      *scheme.Handler
	QuestionHandler    *question.Handler
	TemplateHandler    *examtemplate.Handler
	ExaminationHandler *examination.Handler
	QuestionGenHandler *questiongen.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/schemes", scheme.Routes(cfg.SchemeHandler))
		r.Mount("/questions", question.Routes(cfg.QuestionHandler))
		r.Mount("/question-drafts", questiongen.Routes(cfg.QuestionGenHandler))
		r.Mount("/examination-templates", examtemplate.Routes(cfg.TemplateHandler))
		r.Mount("/examinations", examination.Routes(cfg.ExaminationHandler))
	})

	return r
}
