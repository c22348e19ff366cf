package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExportLog records one export attempt per target format. Failures are kept so
// converter problems show up without digging through application logs.
type ExportLog struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Artifact    string // summary | chat | memo
	Format      string // docx | pdf | plaintext
	Success     bool
	ErrorText   string
	CreatedAt   time.Time
}
