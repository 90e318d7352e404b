package repo

import (
	"gorm.io/gorm"
)

type IRepo interface {
	NbboChange() INbboChange
	ExecReport() IExecReport
}

type Repo struct {
	feedDB *gorm.DB
}

func NewRepo(feedDB *gorm.DB) IRepo {
	return &Repo{
		feedDB: feedDB,
	}
}

func (r *Repo) NbboChange() INbboChange {
	return NewNbboChangeSQLRepo(r.feedDB)
}

func (r *Repo) ExecReport() IExecReport {
	return NewExecReportSQLRepo(r.feedDB)
}
