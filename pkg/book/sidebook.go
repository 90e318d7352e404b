package book

// Side tags one half of the book.
type Side string

const (
	SideBid Side = "BID"
	SideAsk Side = "ASK"
)

// ParseSide resolves a side tag from its wire form.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBid:
		return SideBid, nil
	case SideAsk:
		return SideAsk, nil
	}
	return "", ErrUnknownSide
}

// Internal sentinels for "no book on this side". They never cross the public
// boundary; bestPrice reports ok=false instead.
const (
	noBidTick = -1
	noAskTick = maxTick
)

// sideBook maintains the occupied price levels of one side. levels and the
// tick heap cover exactly the same set of ticks after every operation.
type sideBook struct {
	side   Side
	levels map[int]*priceLevel
	ticks  *tickHeap
}

func newSideBook(side Side) *sideBook {
	less := func(i, j int) bool { return i > j } // bids: highest tick first
	if side == SideAsk {
		less = func(i, j int) bool { return i < j }
	}
	return &sideBook{
		side:   side,
		levels: make(map[int]*priceLevel),
		ticks:  newTickHeap(less),
	}
}

// add books qty at tick for venue and reports the previous best tick when the
// top of book moved. The first level on an empty side is not an improvement
// over any real price, so it never reports.
func (sb *sideBook) add(tick int, venue VenueID, qty uint32) (prevBest int, moved bool) {
	prevBest = sb.bestTick()

	pl := sb.levels[tick]
	if pl == nil {
		pl = &priceLevel{}
		sb.levels[tick] = pl
		sb.ticks.insert(tick)
	}
	pl.adjust(venue, int64(qty))

	if prevBest == sb.emptyTick() {
		return 0, false
	}
	if newBest := sb.bestTick(); newBest != prevBest {
		return prevBest, true
	}
	return 0, false
}

// remove drains qty at tick for venue and erases the level once its aggregate
// hits zero. The caller guarantees the level exists and holds at least qty
// for that venue.
func (sb *sideBook) remove(tick int, venue VenueID, qty uint32) {
	pl := sb.levels[tick]
	if pl == nil {
		panic("book: remove on absent price level")
	}
	pl.adjust(venue, -int64(qty))
	if pl.agg == 0 {
		delete(sb.levels, tick)
		sb.ticks.remove(tick)
	}
}

func (sb *sideBook) emptyTick() int {
	if sb.side == SideBid {
		return noBidTick
	}
	return noAskTick
}

func (sb *sideBook) bestTick() int {
	if tick, ok := sb.ticks.peek(); ok {
		return tick
	}
	return sb.emptyTick()
}

// bestPrice reports the best price on this side; ok is false when the side
// holds no levels.
func (sb *sideBook) bestPrice() (float64, bool) {
	tick := sb.bestTick()
	if tick == sb.emptyTick() {
		return 0, false
	}
	return TickToPrice(tick), true
}

func (sb *sideBook) level(tick int) *priceLevel {
	return sb.levels[tick]
}

// snapshot returns venue mnemonic -> resting qty at tick; empty when the
// level is absent.
func (sb *sideBook) snapshot(tick int) map[string]uint32 {
	out := make(map[string]uint32)
	pl := sb.levels[tick]
	if pl == nil {
		return out
	}
	for _, v := range pl.venuesPresent() {
		out[venueNames[v]] = pl.vqty[v]
	}
	return out
}
