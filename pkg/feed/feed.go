package feed

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/book"
	eventstore "github.com/joripage/nbbo-book/pkg/feed/event_store"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"go.uber.org/zap"
)

// Feed consolidates per-venue order events into NBBO updates: it routes
// normalized events through the book manager, records reportable results in
// the event store, pushes them to the publisher and cache, and notifies the
// quote gateway.
type Feed struct {
	quoteGateway QuoteGateway
	bookManager  *book.Manager
	eventstore   eventstore.EventStore

	publisher *Publisher
	cache     *NbboCache
}

func NewFeed(quoteGateway QuoteGateway) *Feed {
	return &Feed{
		quoteGateway: quoteGateway,
		bookManager:  book.NewManager(),
		eventstore:   eventstore.NewInMemoryEventStore(),
	}
}

func (s *Feed) SetPublisher(p *Publisher) {
	s.publisher = p
}

func (s *Feed) SetCache(c *NbboCache) {
	s.cache = c
}

func (s *Feed) Start(ctx context.Context) error {
	return s.quoteGateway.Start(ctx)
}

// ApplyEvent applies one normalized event and fans out whatever it reported.
func (s *Feed) ApplyEvent(ctx context.Context, ev *model.BookEvent) error {
	if ev.Symbol == "" {
		return errMissingSymbol
	}
	bev, err := toBookEvent(ev)
	if err != nil {
		return err
	}

	res, err := s.bookManager.Apply(ev.Symbol, bev)
	if err != nil {
		return err
	}

	switch r := res.(type) {
	case *book.NbboChange:
		s.reportChange(ctx, ev, r)
	case *book.ExecutionReport:
		s.reportExec(ctx, ev, r)
	}
	return nil
}

// ApplyBatch applies events in order. An error stops the batch; events
// already applied remain applied.
func (s *Feed) ApplyBatch(ctx context.Context, evs []*model.BookEvent) error {
	for _, ev := range evs {
		if err := s.ApplyEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *Feed) reportChange(ctx context.Context, ev *model.BookEvent, change *book.NbboChange) {
	record := model.NewNbboChangeRecord(ev.Symbol, change, ev.TransactTime)
	s.eventstore.AddChange(record)

	if s.cache != nil {
		if err := s.cache.SetBest(ctx, ev.Symbol, change); err != nil {
			zap.S().Warnf("nbbo cache update fail symbol=%s: %v", ev.Symbol, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishNbbo(ctx, record); err != nil {
			zap.S().Warnf("nbbo publish fail symbol=%s: %v", ev.Symbol, err)
		}
	}
	s.quoteGateway.OnNbboChange(ctx, ev.Symbol, change)
}

func (s *Feed) reportExec(ctx context.Context, ev *model.BookEvent, report *book.ExecutionReport) {
	record := model.NewExecReportRecord(ev.Symbol, ev.OrderID, report, ev.TransactTime)
	s.eventstore.AddExec(record)

	if s.publisher != nil {
		if err := s.publisher.PublishExec(ctx, record); err != nil {
			zap.S().Warnf("exec publish fail symbol=%s: %v", ev.Symbol, err)
		}
	}
	s.quoteGateway.OnExecReport(ctx, ev.Symbol, report)
}

func (s *Feed) BestBid(symbol string) (float64, bool) {
	return s.bookManager.BestBid(symbol)
}

func (s *Feed) BestAsk(symbol string) (float64, bool) {
	return s.bookManager.BestAsk(symbol)
}

func (s *Feed) Snapshot(symbol, side string, price float64) (map[string]uint32, error) {
	parsed, err := book.ParseSide(side)
	if err != nil {
		return nil, err
	}
	return s.bookManager.Snapshot(symbol, parsed, price)
}

// RecentChanges exposes the in-memory change history for late joiners.
func (s *Feed) RecentChanges(symbol string, n int) []*model.NbboChangeRecord {
	return s.eventstore.RecentChanges(symbol, n)
}

// toBookEvent converts a feed-level event to the core representation. Prices
// become float64 (the book rounds them to ticks) and quantities become
// integer lots at this boundary.
func toBookEvent(ev *model.BookEvent) (book.Event, error) {
	switch ev.Kind {
	case model.EventKindCancel:
		return book.Event{Type: book.EventCancel, OrderID: ev.OrderID}, nil

	case model.EventKindExecute:
		return book.Event{
			Type:    book.EventExecute,
			OrderID: ev.OrderID,
			ExecQty: uint32(ev.ExecQuantity.IntPart()),
		}, nil

	case model.EventKindAdd, model.EventKindReplace:
		side, err := book.ParseSide(ev.Side)
		if err != nil {
			return book.Event{}, err
		}
		venue, err := book.ParseVenue(ev.Venue)
		if err != nil {
			return book.Event{}, err
		}
		typ := book.EventAdd
		if ev.Kind == model.EventKindReplace {
			typ = book.EventReplace
		}
		return book.Event{
			Type:       typ,
			OrderID:    ev.OrderID,
			OldOrderID: ev.OldOrderID,
			Venue:      venue.Code(),
			Side:       side,
			Price:      ev.Price.InexactFloat64(),
			Qty:        uint32(ev.Quantity.IntPart()),
		}, nil
	}
	return book.Event{}, errUnknownEventKind
}
