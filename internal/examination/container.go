package examination

import (
	"gorm.io/gorm"

	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, templates examtemplate.Repository, questions question.Repository) *Container {
	repo := NewRepository(db)
	service := NewService(repo, templates, questions, NewDefaultSampler())
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
