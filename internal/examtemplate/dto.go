package examtemplate

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type CreateTemplateDTO struct {
	SchemeID           uuid.UUID `json:"scheme_id" validate:"required"`
	Name               string    `json:"name" validate:"required"`
	Description        string    `json:"description"`
	DurationMinutes    *int      `json:"duration_minutes" validate:"omitempty,gt=0"`
	TotalQuestions     *int      `json:"total_questions" validate:"omitempty,gt=0"`
	PassingScore       *int      `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	RandomizeQuestions bool      `json:"randomize_questions"`
}

type UpdateTemplateDTO struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	DurationMinutes    *int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	TotalQuestions     *int    `json:"total_questions" validate:"omitempty,gt=0"`
	PassingScore       *int    `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	RandomizeQuestions *bool   `json:"randomize_questions"`
	IsActive           *bool   `json:"is_active"`
}
