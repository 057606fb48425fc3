package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScoringResult is one possible outcome of an app. For score-type apps
// ResultScoreRange is the threshold ("applies when total >= threshold"); for
// test-type apps ResultProp holds the trait codes the outcome is tied to.
type ScoringResult struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"app_id"`
	App              *App           `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppID;references:ID" json:"app,omitempty"`
	ResultName       string         `gorm:"column:result_name;not null" json:"result_name"`
	ResultDesc       string         `gorm:"column:result_desc" json:"result_desc"`
	ResultPicture    string         `gorm:"column:result_picture" json:"result_picture,omitempty"`
	ResultProp       datatypes.JSON `gorm:"column:result_prop;type:jsonb" json:"result_prop,omitempty"`
	ResultScoreRange int            `gorm:"column:result_score_range;not null;default:0" json:"result_score_range"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ScoringResult) TableName() string { return "scoring_result" }

// Props unmarshals the trait code set. An empty blob yields an empty set.
func (r *ScoringResult) Props() ([]string, error) {
	if r == nil || len(r.ResultProp) == 0 {
		return nil, nil
	}
	var props []string
	if err := json.Unmarshal(r.ResultProp, &props); err != nil {
		return nil, err
	}
	return props, nil
}
