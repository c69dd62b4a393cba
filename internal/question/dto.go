package question

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type CreateQuestionDTO struct {
	SchemeID      uuid.UUID    `json:"scheme_id" validate:"required"`
	UnitID        *uuid.UUID   `json:"unit_id"`
	Text          string       `json:"text" validate:"required"`
	Type          QuestionType `json:"type" validate:"required"`
	Options       []Option     `json:"options"`
	CorrectAnswer string       `json:"correct_answer" validate:"required"`
	Explanation   *string      `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Tags          []string     `json:"tags"`
	Points        *int         `json:"points" validate:"omitempty,gt=0"`
}

type UpdateQuestionDTO struct {
	Text          *string    `json:"text"`
	Options       []Option   `json:"options"`
	CorrectAnswer *string    `json:"correct_answer"`
	Explanation   *string    `json:"explanation"`
	Difficulty    *Difficulty `json:"difficulty"`
	Tags          []string   `json:"tags"`
	Points        *int       `json:"points" validate:"omitempty,gt=0"`
	IsActive      *bool      `json:"is_active"`
}
