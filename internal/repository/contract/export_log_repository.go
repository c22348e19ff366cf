package contract

import (
	"context"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/repository/specification"
)

type ExportLogRepository interface {
	Create(ctx context.Context, log *entity.ExportLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExportLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
