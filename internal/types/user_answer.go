package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserAnswer is a scored submission. Choices stores the original ordered
// answer keys exactly as submitted; ResultScore is set only for score-type
// apps.
type UserAnswer struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"app_id"`
	AppType       AppType        `gorm:"column:app_type;not null;default:0" json:"app_type"`
	ScoringMethod ScoringMethod  `gorm:"column:scoring_method;not null;default:0" json:"scoring_method"`
	Choices       datatypes.JSON `gorm:"column:choices;type:jsonb" json:"choices"`
	ResultID      *uuid.UUID     `gorm:"type:uuid" json:"result_id,omitempty"`
	ResultName    string         `gorm:"column:result_name" json:"result_name"`
	ResultDesc    string         `gorm:"column:result_desc" json:"result_desc"`
	ResultPicture string         `gorm:"column:result_picture" json:"result_picture,omitempty"`
	ResultScore   *int           `gorm:"column:result_score" json:"result_score,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserAnswer) TableName() string { return "user_answer" }

// SetChoices serializes the submitted answer keys, order preserved.
func (ua *UserAnswer) SetChoices(choices []string) error {
	raw, err := json.Marshal(choices)
	if err != nil {
		return err
	}
	ua.Choices = datatypes.JSON(raw)
	return nil
}

// GetChoices deserializes the stored answer keys.
func (ua *UserAnswer) GetChoices() ([]string, error) {
	if ua == nil || len(ua.Choices) == 0 {
		return nil, nil
	}
	var choices []string
	if err := json.Unmarshal(ua.Choices, &choices); err != nil {
		return nil, err
	}
	return choices, nil
}
