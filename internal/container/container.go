package container

import (
	"context"
	"log"
	"os"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
	"github.com/fikshb/LSPLMS-sub000/internal/config"
	"github.com/fikshb/LSPLMS-sub000/internal/examination"
	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
	"github.com/fikshb/LSPLMS-sub000/internal/questiongen"
	"github.com/fikshb/LSPLMS-sub000/internal/scheme"
)

type Container struct {
	SchemeContainer      *scheme.Container
	QuestionContainer    *question.Container
	TemplateContainer    *examtemplate.Container
	ExaminationContainer *examination.Container
	QuestionGenContainer *questiongen.Container
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	schemeContainer := scheme.NewContainer(config.DB)
	questionContainer := question.NewContainer(config.DB)
	templateContainer := examtemplate.NewContainer(config.DB)
	examinationContainer := examination.NewContainer(
		config.DB,
		templateContainer.Repo,
		questionContainer.Repo,
	)
	questionGenContainer := questiongen.NewContainer()

	return &Container{
		SchemeContainer:      schemeContainer,
		QuestionContainer:    questionContainer,
		TemplateContainer:    templateContainer,
		ExaminationContainer: examinationContainer,
		QuestionGenContainer: questionGenContainer,
	}
}
