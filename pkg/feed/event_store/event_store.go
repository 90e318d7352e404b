package eventstore

import "github.com/joripage/nbbo-book/pkg/feed/model"

type EventStore interface {
	AddChange(rec *model.NbboChangeRecord)
	AddExec(rec *model.ExecReportRecord)
	LatestChange(symbol string) *model.NbboChangeRecord
	RecentChanges(symbol string, n int) []*model.NbboChangeRecord
}
