package examtemplate

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

var ErrTemplateNotFound = errors.New("examination template not found")

const (
	DefaultDurationMinutes = 60
	DefaultTotalQuestions  = 20
	DefaultPassingScore    = 70
)

type Service interface {
	Create(ctx context.Context, dto CreateTemplateDTO) (*Template, error)
	Get(ctx context.Context, id uuid.UUID) (*Template, error)
	List(ctx context.Context, schemeID *uuid.UUID) ([]Template, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateTemplateDTO) (*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, dto CreateTemplateDTO) (*Template, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	t := Template{
		ID:                 uuid.New(),
		SchemeID:           dto.SchemeID,
		Name:               dto.Name,
		Description:        dto.Description,
		DurationMinutes:    DefaultDurationMinutes,
		TotalQuestions:     DefaultTotalQuestions,
		PassingScore:       DefaultPassingScore,
		RandomizeQuestions: dto.RandomizeQuestions,
		IsActive:           true,
	}
	if dto.DurationMinutes != nil {
		t.DurationMinutes = *dto.DurationMinutes
	}
	if dto.TotalQuestions != nil {
		t.TotalQuestions = *dto.TotalQuestions
	}
	if dto.PassingScore != nil {
		t.PassingScore = *dto.PassingScore
	}

	if err := s.repo.Create(&t); err != nil {
		log.WithError(err).Error("Failed to create examination template")
		return nil, err
	}

	log.WithField("template_id", t.ID).Info("Examination template created")
	return &t, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *service) List(ctx context.Context, schemeID *uuid.UUID) ([]Template, error) {
	return s.repo.FindAll(schemeID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateTemplateDTO) (*Template, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.DurationMinutes != nil {
		t.DurationMinutes = *dto.DurationMinutes
	}
	if dto.TotalQuestions != nil {
		t.TotalQuestions = *dto.TotalQuestions
	}
	if dto.PassingScore != nil {
		t.PassingScore = *dto.PassingScore
	}
	if dto.RandomizeQuestions != nil {
		t.RandomizeQuestions = *dto.RandomizeQuestions
	}
	if dto.IsActive != nil {
		t.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to update examination template")
		return nil, err
	}
	return t, nil
}

// Delete removes a template, or soft-disables it when historical exam
// instances still reference it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.repo.CountExamReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		t.IsActive = false
		if err := s.repo.Update(t); err != nil {
			log.WithError(err).Error("Failed to disable referenced template")
			return err
		}
		log.WithField("template_id", id).Info("Template disabled instead of deleted (referenced by examinations)")
		return nil
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete examination template")
		return err
	}
	return nil
}
