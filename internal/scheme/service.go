package scheme

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

var ErrSchemeNotFound = errors.New("scheme not found")

type Service interface {
	Create(ctx context.Context, dto CreateSchemeDTO) (*Scheme, error)
	Get(ctx context.Context, id uuid.UUID) (*Scheme, error)
	List(ctx context.Context) ([]Scheme, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateSchemeDTO) (*Scheme, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, dto CreateSchemeDTO) (*Scheme, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	sch := Scheme{
		ID:          uuid.New(),
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(&sch); err != nil {
		log.WithError(err).Error("Failed to create scheme")
		return nil, err
	}

	log.WithField("scheme_id", sch.ID).Info("Scheme created")
	return &sch, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Scheme, error) {
	sch, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, ErrSchemeNotFound
	}
	return sch, nil
}

func (s *service) List(ctx context.Context) ([]Scheme, error) {
	return s.repo.FindAll()
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateSchemeDTO) (*Scheme, error) {
	log := config.WithContext(ctx)

	sch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Code != nil {
		sch.Code = *dto.Code
	}
	if dto.Name != nil {
		sch.Name = *dto.Name
	}
	if dto.Description != nil {
		sch.Description = *dto.Description
	}
	if dto.IsActive != nil {
		sch.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(sch); err != nil {
		log.WithError(err).Error("Failed to update scheme")
		return nil, err
	}
	return sch, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete scheme")
		return err
	}
	return nil
}
