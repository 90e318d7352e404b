// file: pkg/book/book.go

package book

// Book is the consolidated multi-venue book for one instrument: a side book
// per side plus the live-order index, kept in lockstep by the event entry
// points. The Book does no locking of its own; callers serialize access
// (see Manager).
type Book struct {
	bid    *sideBook
	ask    *sideBook
	orders *orderIndex
}

func New() *Book {
	return &Book{
		bid:    newSideBook(SideBid),
		ask:    newSideBook(SideAsk),
		orders: newOrderIndex(),
	}
}

func (b *Book) sidebook(side Side) (*sideBook, error) {
	switch side {
	case SideBid:
		return b.bid, nil
	case SideAsk:
		return b.ask, nil
	}
	return nil, ErrUnknownSide
}

// OnAdd books a new resting order. It returns a non-nil NbboChange when the
// top of book moved, except for the first level on a previously empty side.
// A duplicate live id is a caller bug and is rejected before any mutation.
func (b *Book) OnAdd(oid string, venue VenueID, side Side, price float64, qty uint32) (*NbboChange, error) {
	sb, err := b.sidebook(side)
	if err != nil {
		return nil, err
	}
	if !venue.valid() {
		return nil, ErrUnknownVenue
	}
	if oid == "" || qty == 0 {
		return nil, ErrBadEvent
	}
	if b.orders.live(oid) {
		return nil, ErrDuplicateOrder
	}
	if price < 0 {
		return nil, ErrPriceOutOfRange
	}
	tick := PriceToTick(price)
	if tick < 0 || tick >= maxTick {
		return nil, ErrPriceOutOfRange
	}

	prevBest, moved := sb.add(tick, venue, qty)
	b.orders.put(oid, &orderMeta{side: side, tick: tick, venue: venue, qty: qty})

	if !moved {
		return nil, nil
	}
	return b.nbboChange(sb, tick, prevBest), nil
}

// nbboChange builds the change record from the new and old best levels. An
// add never depletes a level, so the displaced best is still present.
func (b *Book) nbboChange(sb *sideBook, newTick, oldTick int) *NbboChange {
	newPl := sb.level(newTick)
	oldPl := sb.level(oldTick)
	return &NbboChange{
		Side:      sb.side,
		NewPrice:  TickToPrice(newTick),
		NewAgg:    newPl.aggregate(),
		OldPrice:  TickToPrice(oldTick),
		OldAgg:    oldPl.aggregate(),
		OldVenues: oldPl.venueString(),
	}
}

// OnCancel removes a live order. Unknown ids are ignored: replayed feeds
// commonly carry duplicate cancels.
func (b *Book) OnCancel(oid string) {
	m, ok := b.orders.get(oid)
	if !ok {
		return
	}
	b.orders.delete(oid)
	sb, _ := b.sidebook(m.side)
	sb.remove(m.tick, m.venue, m.qty)
}

// OnReplace is add-then-cancel, in that order, so draining the old price
// cannot masquerade as a top-of-book move. The NBBO change (if any) is that
// of the add. A dead old id leaves the cancel a no-op.
func (b *Book) OnReplace(newOID, oldOID string, venue VenueID, side Side, price float64, qty uint32) (*NbboChange, error) {
	change, err := b.OnAdd(newOID, venue, side, price, qty)
	if err != nil {
		return nil, err
	}
	b.OnCancel(oldOID)
	return change, nil
}

// OnExecute trades qty out of a live order and reports the post-trade state
// of its level. The execution price comes from the order record's tick: the
// level itself may already be gone. Unknown ids are ignored.
func (b *Book) OnExecute(oid string, execQty uint32) *ExecutionReport {
	m, ok := b.orders.get(oid)
	if !ok {
		return nil
	}

	take := execQty
	if take > m.qty {
		take = m.qty
	}
	m.qty -= take
	sb, _ := b.sidebook(m.side)
	sb.remove(m.tick, m.venue, take)

	report := &ExecutionReport{ExecPrice: TickToPrice(m.tick)}
	if pl := sb.level(m.tick); pl != nil {
		report.LevelRemaining = pl.aggregate()
		report.PerVenueQty = pl.vqty
		report.Venues = pl.venueString()
	}

	if m.qty == 0 {
		b.orders.delete(oid)
	}
	return report
}

// OnBatch applies events in order and collects the reportable results. An
// error stops the batch immediately; events already applied stay applied.
func (b *Book) OnBatch(events []Event) ([]Result, error) {
	out := make([]Result, 0, len(events))
	for i := range events {
		res, err := b.apply(&events[i])
		if err != nil {
			return out, err
		}
		if res != nil {
			out = append(out, res)
		}
	}
	return out, nil
}

func (b *Book) apply(ev *Event) (Result, error) {
	switch ev.Type {
	case EventAdd:
		venue, err := VenueFromCode(ev.Venue)
		if err != nil {
			return nil, err
		}
		change, err := b.OnAdd(ev.OrderID, venue, ev.Side, ev.Price, ev.Qty)
		if err != nil || change == nil {
			return nil, err
		}
		return change, nil

	case EventCancel:
		b.OnCancel(ev.OrderID)
		return nil, nil

	case EventReplace:
		venue, err := VenueFromCode(ev.Venue)
		if err != nil {
			return nil, err
		}
		change, err := b.OnReplace(ev.OrderID, ev.OldOrderID, venue, ev.Side, ev.Price, ev.Qty)
		if err != nil || change == nil {
			return nil, err
		}
		return change, nil

	case EventExecute:
		report := b.OnExecute(ev.OrderID, ev.ExecQty)
		if report == nil {
			return nil, nil
		}
		return report, nil
	}
	return nil, ErrBadEvent
}

// BestBid reports the best bid price; ok is false when no bid is resting.
func (b *Book) BestBid() (float64, bool) {
	return b.bid.bestPrice()
}

// BestAsk reports the best ask price; ok is false when no ask is resting.
func (b *Book) BestAsk() (float64, bool) {
	return b.ask.bestPrice()
}

// Snapshot returns venue mnemonic -> resting qty at price on side, empty when
// the level is absent.
func (b *Book) Snapshot(side Side, price float64) (map[string]uint32, error) {
	sb, err := b.sidebook(side)
	if err != nil {
		return nil, err
	}
	return sb.snapshot(PriceToTick(price)), nil
}

// LiveOrders reports the number of live order ids.
func (b *Book) LiveOrders() int {
	return b.orders.size()
}
