package implementation

import (
	"context"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/mapper"
	"cim-memo-be/internal/model"
	"cim-memo-be/internal/repository/contract"
	"cim-memo-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ExportLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewExportLogRepository(db *gorm.DB) contract.ExportLogRepository {
	return &ExportLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *ExportLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExportLogRepositoryImpl) Create(ctx context.Context, log *entity.ExportLog) error {
	m := r.mapper.ExportLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ExportLogToEntity(m)
	return nil
}

func (r *ExportLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExportLog, error) {
	var models []*model.ExportLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.ExportLog, 0, len(models))
	for _, m := range models {
		logs = append(logs, r.mapper.ExportLogToEntity(m))
	}
	return logs, nil
}

func (r *ExportLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ExportLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
