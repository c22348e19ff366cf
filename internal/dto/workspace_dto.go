package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceResponse struct {
	Id           uuid.UUID `json:"id"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UploadFilesResponse struct {
	Files []FileRecordDTO `json:"files"`
}

type FileRecordDTO struct {
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	StorageURI string    `json:"storage_uri"`
	MimeType   string    `json:"mime_type"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ListFilesResponse struct {
	Files []FileRecordDTO `json:"files"`
}

type PageCountResponse struct {
	Name      string `json:"name"`
	PageCount int    `json:"page_count"`
}
