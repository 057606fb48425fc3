package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionOption is one keyed option of a question. Score is meaningful for
// score-type apps, Result (a trait code) for test-type apps.
type QuestionOption struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Score  int    `json:"score,omitempty"`
	Result string `json:"result,omitempty"`
}

type QuestionContent struct {
	Title   string           `json:"title"`
	Options []QuestionOption `json:"options"`
}

// Question holds the full ordered question list of an app as one JSON blob,
// mirroring how owners author it in a single edit.
type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"app_id"`
	App       *App           `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppID;references:ID" json:"app,omitempty"`
	Content   datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }

// DecodeContent unmarshals the stored question list.
func (q *Question) DecodeContent() ([]QuestionContent, error) {
	if q == nil || len(q.Content) == 0 {
		return nil, nil
	}
	var content []QuestionContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// EncodeContent marshals the question list into the stored blob.
func (q *Question) EncodeContent(content []QuestionContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	q.Content = datatypes.JSON(raw)
	return nil
}
