package unitofwork

import (
	"context"

	"cim-memo-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GenerationLogRepository() contract.GenerationLogRepository
	ExportLogRepository() contract.ExportLogRepository
}
