package scheme

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(s *Scheme) error
	FindByID(id uuid.UUID) (*Scheme, error)
	FindAll() ([]Scheme, error)
	Update(s *Scheme) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(s *Scheme) error {
	return r.db.Create(s).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Scheme, error) {
	var s Scheme
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAll() ([]Scheme, error) {
	var schemes []Scheme
	if err := r.db.Order("code ASC").Find(&schemes).Error; err != nil {
		return nil, err
	}
	return schemes, nil
}

func (r *repository) Update(s *Scheme) error {
	return r.db.Save(s).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Scheme{}, "id = ?", id).Error
}
