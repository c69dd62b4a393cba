package question

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	SchemeID   *uuid.UUID
	UnitID     *uuid.UUID
	ActiveOnly bool
}

type Repository interface {
	Create(q *Question) error
	FindByID(id uuid.UUID) (*Question, error)
	FindAll(filter ListFilter) ([]Question, error)
	FindActiveByScheme(schemeID uuid.UUID) ([]Question, error)
	Update(q *Question) error
	Delete(id uuid.UUID) error
	CountExamReferences(id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(q *Question) error {
	return r.db.Create(q).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindAll(filter ListFilter) ([]Question, error) {
	tx := r.db.Order("created_at DESC")
	if filter.SchemeID != nil {
		tx = tx.Where("scheme_id = ?", *filter.SchemeID)
	}
	if filter.UnitID != nil {
		tx = tx.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var questions []Question
	if err := tx.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) FindActiveByScheme(schemeID uuid.UUID) ([]Question, error) {
	var questions []Question
	if err := r.db.
		Where("scheme_id = ? AND is_active = ?", schemeID, true).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) Update(q *Question) error {
	return r.db.Save(q).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

// CountExamReferences counts exam question links that snapshot this
// question, which decides between hard delete and soft disable.
func (r *repository) CountExamReferences(id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Table("exam_questions").
		Where("question_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
