package examination

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateWithQuestions(e *Examination, links []*ExamQuestion) error
	FindByID(id uuid.UUID) (*Examination, error)
	FindAllByApplication(applicationID uuid.UUID) ([]Examination, error)
	ListQuestions(examinationID uuid.UUID) ([]*ExamQuestion, error)
	FindQuestionLink(examinationID, questionID uuid.UUID) (*ExamQuestion, error)
	// TransitionStatus performs a conditional status update: the write only
	// happens when the row still holds the expected current status, so two
	// racing transitions cannot both succeed. Reports whether a row changed.
	TransitionStatus(id uuid.UUID, from, to Status, updates map[string]interface{}) (bool, error)
	// SubmitAnswers writes the answered links and the IN_PROGRESS→COMPLETED
	// transition as one transaction, guarded the same way.
	SubmitAnswers(id uuid.UUID, from, to Status, updates map[string]interface{}, links []*ExamQuestion) (bool, error)
	AttachQuestions(links []*ExamQuestion) error
	UpdateQuestion(link *ExamQuestion) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithQuestions(e *Examination, links []*ExamQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindByID(id uuid.UUID) (*Examination, error) {
	var e Examination
	if err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllByApplication(applicationID uuid.UUID) ([]Examination, error) {
	var exams []Examination
	if err := r.db.
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *repository) ListQuestions(examinationID uuid.UUID) ([]*ExamQuestion, error) {
	var links []*ExamQuestion
	if err := r.db.
		Where("examination_id = ?", examinationID).
		Order("display_order ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) FindQuestionLink(examinationID, questionID uuid.UUID) (*ExamQuestion, error) {
	var link ExamQuestion
	if err := r.db.
		First(&link, "examination_id = ? AND question_id = ?", examinationID, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repository) TransitionStatus(id uuid.UUID, from, to Status, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	res := r.db.Model(&Examination{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) SubmitAnswers(id uuid.UUID, from, to Status, updates map[string]interface{}, links []*ExamQuestion) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	transitioned := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Examination{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		transitioned = true

		for _, link := range links {
			if err := tx.Model(&ExamQuestion{}).
				Where("id = ?", link.ID).
				Updates(map[string]interface{}{
					"user_answer": link.UserAnswer,
					"is_correct":  link.IsCorrect,
					"answered_at": link.AnsweredAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return transitioned, err
}

func (r *repository) AttachQuestions(links []*ExamQuestion) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.Create(&links).Error
}

func (r *repository) UpdateQuestion(link *ExamQuestion) error {
	return r.db.Save(link).Error
}
