package model

import (
	"fmt"
	"time"

	"github.com/joripage/nbbo-book/pkg/book"
)

// NbboChangeRecord is the persisted and published form of a top-of-book move.
type NbboChangeRecord struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID   string    `gorm:"column:event_id;uniqueIndex" json:"event_id"`
	Symbol    string    `gorm:"column:symbol;index" json:"symbol"`
	Side      string    `gorm:"column:side" json:"side"`
	NewPrice  float64   `gorm:"column:new_price" json:"new_price"`
	NewAgg    int64     `gorm:"column:new_agg" json:"new_agg"`
	OldPrice  float64   `gorm:"column:old_price" json:"old_price"`
	OldAgg    int64     `gorm:"column:old_agg" json:"old_agg"`
	OldVenues string    `gorm:"column:old_venues" json:"old_venues"`
	Timestamp time.Time `gorm:"column:ts" json:"ts"`
}

func (NbboChangeRecord) TableName() string {
	return "nbbo_changes"
}

// ExecReportRecord is the persisted form of an execution against the book.
type ExecReportRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID        string    `gorm:"column:event_id;uniqueIndex" json:"event_id"`
	Symbol         string    `gorm:"column:symbol;index" json:"symbol"`
	OrderID        string    `gorm:"column:order_id" json:"order_id"`
	ExecPrice      float64   `gorm:"column:exec_price" json:"exec_price"`
	LevelRemaining int64     `gorm:"column:level_remaining" json:"level_remaining"`
	Venues         string    `gorm:"column:venues" json:"venues"`
	Timestamp      time.Time `gorm:"column:ts" json:"ts"`
}

func (ExecReportRecord) TableName() string {
	return "exec_reports"
}

func NewNbboChangeRecord(symbol string, change *book.NbboChange, ts time.Time) *NbboChangeRecord {
	return &NbboChangeRecord{
		EventID:   NewEventID(symbol, "nbbo", ts),
		Symbol:    symbol,
		Side:      string(change.Side),
		NewPrice:  change.NewPrice,
		NewAgg:    int64(change.NewAgg),
		OldPrice:  change.OldPrice,
		OldAgg:    int64(change.OldAgg),
		OldVenues: change.OldVenues,
		Timestamp: ts,
	}
}

func NewExecReportRecord(symbol, orderID string, report *book.ExecutionReport, ts time.Time) *ExecReportRecord {
	return &ExecReportRecord{
		EventID:        NewEventID(symbol, "exec", ts),
		Symbol:         symbol,
		OrderID:        orderID,
		ExecPrice:      report.ExecPrice,
		LevelRemaining: int64(report.LevelRemaining),
		Venues:         report.Venues,
		Timestamp:      ts,
	}
}

func NewEventID(symbol, kind string, ts time.Time) string {
	return fmt.Sprintf("%s-%s-%d", symbol, kind, ts.UnixNano())
}
