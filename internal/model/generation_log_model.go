package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GenerationLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Stage       string         `gorm:"type:varchar(20);not null;index"`
	Function    string         `gorm:"type:varchar(20);not null"`
	ModelOption string         `gorm:"type:varchar(50);not null"`
	Temperature float64        `gorm:"not null"`
	DurationMs  int64          `gorm:"not null"`
	Success     bool           `gorm:"not null;index"`
	ErrorText   string         `gorm:"type:text"`
	Details     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"default:now();not null;index"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
