package examtemplate

import (
	"time"

	"github.com/google/uuid"
)

// Template configures how an exam instance is generated for a scheme:
// how long it runs, how many questions it draws, the passing threshold and
// whether the bank is sampled at random.
type Template struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SchemeID           uuid.UUID `gorm:"type:uuid;not null;index" json:"scheme_id"`
	Name               string    `gorm:"type:text;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes    int       `gorm:"not null;default:60" json:"duration_minutes"`
	TotalQuestions     int       `gorm:"not null;default:20" json:"total_questions"`
	PassingScore       int       `gorm:"not null;default:70" json:"passing_score"`
	RandomizeQuestions bool      `gorm:"not null;default:false" json:"randomize_questions"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Template) TableName() string {
	return "examination_templates"
}
