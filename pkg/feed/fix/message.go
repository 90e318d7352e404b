package fixgateway

import (
	"fmt"
	"time"

	"github.com/joripage/nbbo-book/pkg/book"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/fix44/marketdataincrementalrefresh"
	"github.com/quickfixgo/fix44/marketdatasnapshotfullrefresh"
	"github.com/shopspring/decimal"
)

// mdEntryToBookEvent maps one MDIncGrp entry to a normalized book event:
// MDUpdateAction New/Change/Delete become add/replace/cancel, trade entries
// become executes against the referenced resting order.
func mdEntryToBookEvent(entry marketdataincrementalrefresh.NoMDEntries) (*model.BookEvent, error) {
	symbol, _ := entry.GetSymbol()
	entryID, _ := entry.GetMDEntryID()
	refID, _ := entry.GetMDEntryRefID()
	venue, _ := entry.GetMDMkt()
	action, _ := entry.GetMDUpdateAction()
	entryType, _ := entry.GetMDEntryType()
	px, _ := entry.GetMDEntryPx()
	size, _ := entry.GetMDEntrySize()

	ev := &model.BookEvent{
		Symbol:       symbol,
		Venue:        venue,
		TransactTime: time.Now(),
	}

	if entryType == enum.MDEntryType_TRADE {
		ev.Kind = model.EventKindExecute
		ev.OrderID = entryID
		if refID != "" {
			ev.OrderID = refID
		}
		ev.ExecQuantity = size
		return ev, nil
	}

	switch entryType {
	case enum.MDEntryType_BID:
		ev.Side = string(book.SideBid)
	case enum.MDEntryType_OFFER:
		ev.Side = string(book.SideAsk)
	default:
		return nil, fmt.Errorf("unsupported MDEntryType %q", entryType)
	}

	switch action {
	case enum.MDUpdateAction_NEW:
		ev.Kind = model.EventKindAdd
		ev.OrderID = entryID
		ev.Price = px
		ev.Quantity = size
	case enum.MDUpdateAction_CHANGE:
		ev.Kind = model.EventKindReplace
		ev.OrderID = entryID
		ev.OldOrderID = refID
		ev.Price = px
		ev.Quantity = size
	case enum.MDUpdateAction_DELETE:
		ev.Kind = model.EventKindCancel
		ev.OrderID = entryID
	default:
		return nil, fmt.Errorf("unsupported MDUpdateAction %q", action)
	}
	return ev, nil
}

// nbboToSnapshot renders a top-of-book move as a one-entry full refresh for
// a subscribed session.
func nbboToSnapshot(symbol, mdReqID string, change *book.NbboChange) marketdatasnapshotfullrefresh.MarketDataSnapshotFullRefresh {
	msg := marketdatasnapshotfullrefresh.New()
	msg.SetSymbol(symbol)
	msg.SetMDReqID(mdReqID)

	entryType := enum.MDEntryType_BID
	if change.Side == book.SideAsk {
		entryType = enum.MDEntryType_OFFER
	}

	group := marketdatasnapshotfullrefresh.NewNoMDEntriesRepeatingGroup()
	entry := group.Add()
	entry.SetMDEntryType(entryType)
	entry.SetMDEntryPx(decimal.NewFromFloat(change.NewPrice), 2)
	entry.SetMDEntrySize(decimal.NewFromInt(int64(change.NewAgg)), 0)
	msg.SetNoMDEntries(group)

	return msg
}
