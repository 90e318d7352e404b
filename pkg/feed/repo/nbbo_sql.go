package repo

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/feed/model"
	"gorm.io/gorm"
)

type NbboChangeSQLRepo struct {
	db *gorm.DB
}

func NewNbboChangeSQLRepo(db *gorm.DB) *NbboChangeSQLRepo {
	return &NbboChangeSQLRepo{
		db: db,
	}
}

func (s *NbboChangeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *NbboChangeSQLRepo) Create(ctx context.Context, record *model.NbboChangeRecord) (*model.NbboChangeRecord, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

func (s *NbboChangeSQLRepo) BulkCreate(ctx context.Context, records []*model.NbboChangeRecord) ([]*model.NbboChangeRecord, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}

func (s *NbboChangeSQLRepo) LatestBySymbol(ctx context.Context, symbol string) (*model.NbboChangeRecord, error) {
	var record model.NbboChangeRecord
	err := s.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("ts DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
