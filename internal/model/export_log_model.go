package model

import (
	"time"

	"github.com/google/uuid"
)

type ExportLog struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Artifact    string    `gorm:"type:varchar(20);not null"`
	Format      string    `gorm:"type:varchar(20);not null"`
	Success     bool      `gorm:"not null;index"`
	ErrorText   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"default:now();not null;index"`
}

func (ExportLog) TableName() string {
	return "export_logs"
}
