package examtemplate

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(t *Template) error
	FindByID(id uuid.UUID) (*Template, error)
	FindAll(schemeID *uuid.UUID) ([]Template, error)
	Update(t *Template) error
	Delete(id uuid.UUID) error
	CountExamReferences(id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(t *Template) error {
	return r.db.Create(t).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Template, error) {
	var t Template
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAll(schemeID *uuid.UUID) ([]Template, error) {
	tx := r.db.Order("created_at DESC")
	if schemeID != nil {
		tx = tx.Where("scheme_id = ?", *schemeID)
	}

	var templates []Template
	if err := tx.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repository) Update(t *Template) error {
	return r.db.Save(t).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Template{}, "id = ?", id).Error
}

func (r *repository) CountExamReferences(id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Table("examinations").
		Where("template_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
