package contract

import (
	"context"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/repository/specification"
)

type GenerationLogRepository interface {
	Create(ctx context.Context, log *entity.GenerationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
