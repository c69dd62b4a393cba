package scheme

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type CreateSchemeDTO struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateSchemeDTO struct {
	Code        *string `json:"code" validate:"omitempty,max=50"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
