package examination

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

// Examination is one exam attempt tied to a certification application.
// Duration and question count are snapshotted from the template at creation,
// so later template edits never change an existing attempt. Examinations are
// a historical record for certification audit and are never deleted.
type Examination struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TemplateID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	ApplicationID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	TotalQuestions  int        `gorm:"not null" json:"total_questions"`
	CorrectCount    *int       `json:"correct_count,omitempty"`
	Score           *int       `json:"score,omitempty"`
	Passed          *bool      `json:"passed,omitempty"`
	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	EvaluatedBy     *uuid.UUID `gorm:"type:uuid" json:"evaluated_by,omitempty"`
	EvaluatedAt     *time.Time `json:"evaluated_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []ExamQuestion `gorm:"foreignKey:ExaminationID" json:"questions,omitempty"`
}

func (Examination) TableName() string {
	return "examinations"
}

// ExamQuestion binds an examination to one selected question. It carries a
// full snapshot of the question as it stood at creation time; bank edits after
// that point do not reach in-flight or completed exams.
type ExamQuestion struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExaminationID uuid.UUID             `gorm:"type:uuid;not null;index" json:"examination_id"`
	QuestionID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"question_id"`
	DisplayOrder  int                   `gorm:"not null" json:"display_order"`
	QuestionText  string                `gorm:"type:text;not null" json:"question_text"`
	QuestionType  question.QuestionType `gorm:"type:varchar(20);not null" json:"question_type"`
	Options       datatypes.JSON        `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer string                `gorm:"type:text;not null" json:"correct_answer,omitempty"`
	Points        int                   `gorm:"not null;default:1" json:"points"`
	UserAnswer    *string               `gorm:"type:text" json:"user_answer,omitempty"`
	IsCorrect     *bool                 `json:"is_correct,omitempty"`
	AnsweredAt    *time.Time            `json:"answered_at,omitempty"`
	CreatedAt     time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}
