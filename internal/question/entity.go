package question

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Option is one selectable alternative of a single-choice question. The code
// is the stable token stored as the answer; the text is what gets displayed.
type Option struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SchemeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"scheme_id"`
	UnitID        *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	Type          QuestionType   `gorm:"type:varchar(20);not null" json:"type"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   *string        `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty    Difficulty     `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"difficulty"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
	Points        int            `gorm:"not null;default:1" json:"points"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the jsonb options column.
func (q *Question) OptionList() ([]Option, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []Option
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
