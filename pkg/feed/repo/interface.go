package repo

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/feed/model"
)

type INbboChange interface {
	Create(ctx context.Context, record *model.NbboChangeRecord) (*model.NbboChangeRecord, error)
	BulkCreate(ctx context.Context, records []*model.NbboChangeRecord) ([]*model.NbboChangeRecord, error)
	LatestBySymbol(ctx context.Context, symbol string) (*model.NbboChangeRecord, error)
}

type IExecReport interface {
	Create(ctx context.Context, record *model.ExecReportRecord) (*model.ExecReportRecord, error)
	BulkCreate(ctx context.Context, records []*model.ExecReportRecord) ([]*model.ExecReportRecord, error)
}
