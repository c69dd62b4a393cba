package examination

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type CreateExaminationDTO struct {
	TemplateID    uuid.UUID `json:"template_id" validate:"required"`
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
}

type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

// SubmitDTO carries the taker's answer batch. Answers must be present and an
// array; a missing or malformed field is a validation error, not an empty
// submission.
type SubmitDTO struct {
	Answers *[]SubmittedAnswer `json:"answers"`
}

type AttachQuestionsDTO struct {
	QuestionIDs []uuid.UUID `json:"question_ids" validate:"required,min=1"`
}

type GradeQuestionDTO struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}
