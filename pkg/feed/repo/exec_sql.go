package repo

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/feed/model"
	"gorm.io/gorm"
)

type ExecReportSQLRepo struct {
	db *gorm.DB
}

func NewExecReportSQLRepo(db *gorm.DB) *ExecReportSQLRepo {
	return &ExecReportSQLRepo{
		db: db,
	}
}

func (s *ExecReportSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *ExecReportSQLRepo) Create(ctx context.Context, record *model.ExecReportRecord) (*model.ExecReportRecord, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

func (s *ExecReportSQLRepo) BulkCreate(ctx context.Context, records []*model.ExecReportRecord) ([]*model.ExecReportRecord, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}
