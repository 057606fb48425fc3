package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppType selects the scoring semantics of a quiz app.
type AppType int

const (
	AppTypeScore AppType = 0
	AppTypeTest  AppType = 1
)

func (t AppType) Valid() bool {
	return t == AppTypeScore || t == AppTypeTest
}

func (t AppType) Label() string {
	switch t {
	case AppTypeScore:
		return "score"
	case AppTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// ScoringMethod selects who computes the result: a deterministic in-process
// algorithm or the AI backend.
type ScoringMethod int

const (
	ScoringMethodCustom ScoringMethod = 0
	ScoringMethodAI     ScoringMethod = 1
)

func (m ScoringMethod) Valid() bool {
	return m == ScoringMethodCustom || m == ScoringMethodAI
}

type App struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppName       string         `gorm:"column:app_name;not null" json:"app_name"`
	AppDesc       string         `gorm:"column:app_desc" json:"app_desc"`
	AppIcon       string         `gorm:"column:app_icon" json:"app_icon,omitempty"`
	AppType       AppType        `gorm:"column:app_type;not null;default:0" json:"app_type"`
	ScoringMethod ScoringMethod  `gorm:"column:scoring_method;not null;default:0" json:"scoring_method"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (App) TableName() string { return "app" }
