package mapper

import (
	"encoding/json"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) GenerationLogToModel(e *entity.GenerationLog) *model.GenerationLog {
	if e == nil {
		return nil
	}

	var details datatypes.JSON
	if len(e.Details) > 0 {
		if raw, err := json.Marshal(e.Details); err == nil {
			details = datatypes.JSON(raw)
		}
	}

	return &model.GenerationLog{
		Id:          e.Id,
		WorkspaceId: e.WorkspaceId,
		Stage:       e.Stage,
		Function:    e.Function,
		ModelOption: e.ModelOption,
		Temperature: e.Temperature,
		DurationMs:  e.DurationMs,
		Success:     e.Success,
		ErrorText:   e.ErrorText,
		Details:     details,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *AuditMapper) GenerationLogToEntity(mod *model.GenerationLog) *entity.GenerationLog {
	if mod == nil {
		return nil
	}

	var details map[string]interface{}
	if len(mod.Details) > 0 {
		_ = json.Unmarshal(mod.Details, &details)
	}

	return &entity.GenerationLog{
		Id:          mod.Id,
		WorkspaceId: mod.WorkspaceId,
		Stage:       mod.Stage,
		Function:    mod.Function,
		ModelOption: mod.ModelOption,
		Temperature: mod.Temperature,
		DurationMs:  mod.DurationMs,
		Success:     mod.Success,
		ErrorText:   mod.ErrorText,
		Details:     details,
		CreatedAt:   mod.CreatedAt,
	}
}

func (m *AuditMapper) ExportLogToModel(e *entity.ExportLog) *model.ExportLog {
	if e == nil {
		return nil
	}
	return &model.ExportLog{
		Id:          e.Id,
		WorkspaceId: e.WorkspaceId,
		Artifact:    e.Artifact,
		Format:      e.Format,
		Success:     e.Success,
		ErrorText:   e.ErrorText,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *AuditMapper) ExportLogToEntity(mod *model.ExportLog) *entity.ExportLog {
	if mod == nil {
		return nil
	}
	return &entity.ExportLog{
		Id:          mod.Id,
		WorkspaceId: mod.WorkspaceId,
		Artifact:    mod.Artifact,
		Format:      mod.Format,
		Success:     mod.Success,
		ErrorText:   mod.ErrorText,
		CreatedAt:   mod.CreatedAt,
	}
}
