package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventKindAdd     EventKind = "Add"
	EventKindCancel  EventKind = "Cancel"
	EventKindReplace EventKind = "Replace"
	EventKindExecute EventKind = "Execute"
)

// BookEvent is one normalized order event from a venue feed, before tick
// conversion. Venue carries the canonical venue mnemonic, Side is BID/ASK.
// OldOrderID is set on replace only, ExecQuantity on execute only.
type BookEvent struct {
	Kind         EventKind
	Symbol       string
	OrderID      string
	OldOrderID   string
	Venue        string
	Side         string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	ExecQuantity decimal.Decimal
	TransactTime time.Time
}
