package entity

import (
	"time"

	"github.com/google/uuid"
)

// GenerationLog records one billed model call: what stage asked for it, which
// model served it, and how it went. Workspace state itself is never persisted.
type GenerationLog struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Stage       string // summary | formatting | chat | memo
	Function    string // none | editor | qa
	ModelOption string
	Temperature float64
	DurationMs  int64
	Success     bool
	ErrorText   string
	Details     map[string]interface{}
	CreatedAt   time.Time
}
