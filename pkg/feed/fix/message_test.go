package fixgateway

import (
	"testing"

	"github.com/joripage/nbbo-book/pkg/book"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/fix44/marketdataincrementalrefresh"
	"github.com/shopspring/decimal"
)

func newMDEntry() marketdataincrementalrefresh.NoMDEntries {
	group := marketdataincrementalrefresh.NewNoMDEntriesRepeatingGroup()
	return group.Add()
}

func TestMDEntryToBookEventAdd(t *testing.T) {
	entry := newMDEntry()
	entry.SetMDUpdateAction(enum.MDUpdateAction_NEW)
	entry.SetMDEntryType(enum.MDEntryType_BID)
	entry.SetSymbol("AAPL")
	entry.SetMDEntryID("O1")
	entry.SetMDMkt("CBOE")
	entry.SetMDEntryPx(decimal.NewFromFloat(10.01), 2)
	entry.SetMDEntrySize(decimal.NewFromInt(5), 0)

	ev, err := mdEntryToBookEvent(entry)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if ev.Kind != model.EventKindAdd || ev.Symbol != "AAPL" || ev.OrderID != "O1" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.Venue != "CBOE" || ev.Side != "BID" {
		t.Errorf("unexpected venue/side: %+v", ev)
	}
	if !ev.Price.Equal(decimal.NewFromFloat(10.01)) || !ev.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unexpected price/qty: %+v", ev)
	}
}

func TestMDEntryToBookEventReplace(t *testing.T) {
	entry := newMDEntry()
	entry.SetMDUpdateAction(enum.MDUpdateAction_CHANGE)
	entry.SetMDEntryType(enum.MDEntryType_OFFER)
	entry.SetSymbol("AAPL")
	entry.SetMDEntryID("O2")
	entry.SetMDEntryRefID("O1")
	entry.SetMDMkt("ARCA")
	entry.SetMDEntryPx(decimal.NewFromFloat(19.99), 2)
	entry.SetMDEntrySize(decimal.NewFromInt(4), 0)

	ev, err := mdEntryToBookEvent(entry)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if ev.Kind != model.EventKindReplace || ev.OrderID != "O2" || ev.OldOrderID != "O1" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.Side != "ASK" {
		t.Errorf("offer entry should map to ASK, got %q", ev.Side)
	}
}

func TestMDEntryToBookEventDeleteAndTrade(t *testing.T) {
	entry := newMDEntry()
	entry.SetMDUpdateAction(enum.MDUpdateAction_DELETE)
	entry.SetMDEntryType(enum.MDEntryType_BID)
	entry.SetSymbol("AAPL")
	entry.SetMDEntryID("O1")

	ev, err := mdEntryToBookEvent(entry)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if ev.Kind != model.EventKindCancel || ev.OrderID != "O1" {
		t.Errorf("unexpected event: %+v", ev)
	}

	trade := newMDEntry()
	trade.SetMDUpdateAction(enum.MDUpdateAction_NEW)
	trade.SetMDEntryType(enum.MDEntryType_TRADE)
	trade.SetSymbol("AAPL")
	trade.SetMDEntryID("T1")
	trade.SetMDEntryRefID("O1")
	trade.SetMDEntrySize(decimal.NewFromInt(3), 0)

	ev, err = mdEntryToBookEvent(trade)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if ev.Kind != model.EventKindExecute || ev.OrderID != "O1" {
		t.Errorf("trade should execute against the referenced order: %+v", ev)
	}
	if !ev.ExecQuantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("unexpected exec qty: %+v", ev)
	}
}

func TestMDEntryToBookEventUnsupported(t *testing.T) {
	entry := newMDEntry()
	entry.SetMDUpdateAction(enum.MDUpdateAction_NEW)
	entry.SetMDEntryType(enum.MDEntryType_OPENING_PRICE)
	entry.SetSymbol("AAPL")

	if _, err := mdEntryToBookEvent(entry); err == nil {
		t.Fatalf("expected error for unsupported entry type")
	}
}

func TestNbboToSnapshot(t *testing.T) {
	change := &book.NbboChange{
		Side:     book.SideBid,
		NewPrice: 10.01,
		NewAgg:   3,
	}
	msg := nbboToSnapshot("AAPL", "REQ-1", change)

	symbol, err := msg.GetSymbol()
	if err != nil || symbol != "AAPL" {
		t.Fatalf("symbol = %q, err = %v", symbol, err)
	}
	mdReqID, err := msg.GetMDReqID()
	if err != nil || mdReqID != "REQ-1" {
		t.Fatalf("mdReqID = %q, err = %v", mdReqID, err)
	}

	group, err := msg.GetNoMDEntries()
	if err != nil || group.Len() != 1 {
		t.Fatalf("expected 1 entry, err = %v", err)
	}
	entry := group.Get(0)
	entryType, _ := entry.GetMDEntryType()
	if entryType != enum.MDEntryType_BID {
		t.Errorf("entry type = %q", entryType)
	}
	px, _ := entry.GetMDEntryPx()
	if !px.Equal(decimal.NewFromFloat(10.01)) {
		t.Errorf("entry px = %s", px)
	}
	size, _ := entry.GetMDEntrySize()
	if !size.Equal(decimal.NewFromInt(3)) {
		t.Errorf("entry size = %s", size)
	}
}
