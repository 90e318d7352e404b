package feed

import (
	"context"
	"testing"
	"time"

	"github.com/joripage/nbbo-book/pkg/book"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/shopspring/decimal"
)

type stubGateway struct {
	changes []*book.NbboChange
	reports []*book.ExecutionReport
}

func (g *stubGateway) Start(ctx context.Context) error { return nil }

func (g *stubGateway) OnNbboChange(ctx context.Context, symbol string, change *book.NbboChange) {
	g.changes = append(g.changes, change)
}

func (g *stubGateway) OnExecReport(ctx context.Context, symbol string, report *book.ExecutionReport) {
	g.reports = append(g.reports, report)
}

func addEvent(oid, venue, side string, price float64, qty int64) *model.BookEvent {
	return &model.BookEvent{
		Kind:         model.EventKindAdd,
		Symbol:       "AAPL",
		OrderID:      oid,
		Venue:        venue,
		Side:         side,
		Price:        decimal.NewFromFloat(price),
		Quantity:     decimal.NewFromInt(qty),
		TransactTime: time.Now(),
	}
}

func TestFeedReportsNbboChange(t *testing.T) {
	gw := &stubGateway{}
	f := NewFeed(gw)
	ctx := context.Background()

	if err := f.ApplyEvent(ctx, addEvent("a", "CBOE", "BID", 10.00, 5)); err != nil {
		t.Fatalf("ApplyEvent err: %v", err)
	}
	if len(gw.changes) != 0 {
		t.Fatalf("first add should not notify, got %d", len(gw.changes))
	}

	if err := f.ApplyEvent(ctx, addEvent("b", "ISE", "BID", 10.01, 3)); err != nil {
		t.Fatalf("ApplyEvent err: %v", err)
	}
	if len(gw.changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(gw.changes))
	}
	if gw.changes[0].OldVenues != "C" {
		t.Errorf("unexpected change: %+v", gw.changes[0])
	}

	if best, ok := f.BestBid("AAPL"); !ok || best < 10.009 || best > 10.011 {
		t.Fatalf("best bid = %v (ok=%v)", best, ok)
	}

	recent := f.RecentChanges("AAPL", 10)
	if len(recent) != 1 || recent[0].Symbol != "AAPL" || recent[0].OldVenues != "C" {
		t.Fatalf("event store missed the change: %+v", recent)
	}
}

func TestFeedReportsExecution(t *testing.T) {
	gw := &stubGateway{}
	f := NewFeed(gw)
	ctx := context.Background()

	if err := f.ApplyBatch(ctx, []*model.BookEvent{
		addEvent("a", "CBOE", "ASK", 20.00, 5),
		{
			Kind:         model.EventKindExecute,
			Symbol:       "AAPL",
			OrderID:      "a",
			ExecQuantity: decimal.NewFromInt(2),
			TransactTime: time.Now(),
		},
	}); err != nil {
		t.Fatalf("ApplyBatch err: %v", err)
	}

	if len(gw.reports) != 1 {
		t.Fatalf("expected 1 exec report, got %d", len(gw.reports))
	}
	if gw.reports[0].LevelRemaining != 3 {
		t.Errorf("unexpected report: %+v", gw.reports[0])
	}
}

func TestFeedRejectsBadEvents(t *testing.T) {
	gw := &stubGateway{}
	f := NewFeed(gw)
	ctx := context.Background()

	ev := addEvent("a", "NYSE", "BID", 10.00, 5)
	if err := f.ApplyEvent(ctx, ev); err != book.ErrUnknownVenue {
		t.Errorf("expected ErrUnknownVenue, got %v", err)
	}

	ev = addEvent("a", "CBOE", "BUY", 10.00, 5)
	if err := f.ApplyEvent(ctx, ev); err != book.ErrUnknownSide {
		t.Errorf("expected ErrUnknownSide, got %v", err)
	}

	ev = addEvent("a", "CBOE", "BID", 10.00, 5)
	ev.Symbol = ""
	if err := f.ApplyEvent(ctx, ev); err != errMissingSymbol {
		t.Errorf("expected errMissingSymbol, got %v", err)
	}

	ev = addEvent("a", "CBOE", "BID", 10.00, 5)
	ev.Kind = model.EventKind("Bogus")
	if err := f.ApplyEvent(ctx, ev); err != errUnknownEventKind {
		t.Errorf("expected errUnknownEventKind, got %v", err)
	}
}
