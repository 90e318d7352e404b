package book

import (
	"fmt"
	"sort"
)

// priceLevel holds the resting quantity at one (side, tick) pair, sharded by
// venue. vqty is a fixed array so adjust never allocates.
type priceLevel struct {
	vqty [NumVenues]uint32
	agg  uint32
}

// adjust applies a signed quantity delta for one venue. A delta that would
// drive the venue quantity negative means the caller lost track of the book;
// there is no safe partial state, so it panics.
func (pl *priceLevel) adjust(venue VenueID, delta int64) {
	next := int64(pl.vqty[venue]) + delta
	if next < 0 {
		panic(fmt.Sprintf("book: venue %s quantity would go negative (%d)", venue, next))
	}
	pl.vqty[venue] = uint32(next)
	pl.agg = uint32(int64(pl.agg) + delta)
}

func (pl *priceLevel) aggregate() uint32 {
	return pl.agg
}

// venuesPresent lists the venues with resting quantity, in canonical order.
func (pl *priceLevel) venuesPresent() []VenueID {
	out := make([]VenueID, 0, NumVenues)
	for v := VenueID(0); v < NumVenues; v++ {
		if pl.vqty[v] > 0 {
			out = append(out, v)
		}
	}
	return out
}

// venueString is the canonical form consumers use to compare presence sets:
// the codes of every venue with quantity, sorted ascending by code point.
func (pl *priceLevel) venueString() string {
	codes := make([]byte, 0, NumVenues)
	for v := 0; v < NumVenues; v++ {
		if pl.vqty[v] > 0 {
			codes = append(codes, venueCodes[v])
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return string(codes)
}
