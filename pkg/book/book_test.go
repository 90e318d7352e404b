package book

import (
	"fmt"
	"math"
	"testing"
)

func priceEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustBestBid(t *testing.T, b *Book, want float64) {
	t.Helper()
	got, ok := b.BestBid()
	if !ok || !priceEq(got, want) {
		t.Fatalf("best bid = %v (ok=%v), expected %v", got, ok, want)
	}
}

func mustBestAsk(t *testing.T, b *Book, want float64) {
	t.Helper()
	got, ok := b.BestAsk()
	if !ok || !priceEq(got, want) {
		t.Fatalf("best ask = %v (ok=%v), expected %v", got, ok, want)
	}
}

func TestFirstAddNoNbboChange(t *testing.T) {
	b := New()

	change, err := b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)
	if err != nil {
		t.Fatalf("OnAdd err: %v", err)
	}
	if change != nil {
		t.Fatalf("first add should not report an NBBO change, got %+v", change)
	}
	mustBestBid(t, b, 10.00)
}

func TestImprovingBidReportsOldBest(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)

	change, err := b.OnAdd("b", VenueISE, SideBid, 10.01, 3)
	if err != nil {
		t.Fatalf("OnAdd err: %v", err)
	}
	if change == nil {
		t.Fatalf("improving bid should report a change")
	}
	if !priceEq(change.NewPrice, 10.01) || change.NewAgg != 3 {
		t.Errorf("new side of change wrong: %+v", change)
	}
	if !priceEq(change.OldPrice, 10.00) || change.OldAgg != 5 || change.OldVenues != "C" {
		t.Errorf("old side of change wrong: %+v", change)
	}
	mustBestBid(t, b, 10.01)
}

func TestEqualPriceAddAtBestNoChange(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)
	b.OnAdd("b", VenueISE, SideBid, 10.01, 3)

	change, err := b.OnAdd("c", VenueBOX, SideBid, 10.01, 2)
	if err != nil {
		t.Fatalf("OnAdd err: %v", err)
	}
	if change != nil {
		t.Fatalf("equal-price add should not report, got %+v", change)
	}

	snap, err := b.Snapshot(SideBid, 10.01)
	if err != nil {
		t.Fatalf("Snapshot err: %v", err)
	}
	if len(snap) != 2 || snap["ISE"] != 3 || snap["BOX"] != 2 {
		t.Errorf("unexpected snapshot: %v", snap)
	}
}

func TestExecuteDepletesBest(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)
	b.OnAdd("b", VenueISE, SideBid, 10.01, 3)
	b.OnAdd("c", VenueBOX, SideBid, 10.01, 2)

	report := b.OnExecute("b", 3)
	if report == nil {
		t.Fatalf("expected execution report")
	}
	if !priceEq(report.ExecPrice, 10.01) || report.LevelRemaining != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.PerVenueQty[VenueBOX] != 2 || report.Venues != "B" {
		t.Errorf("unexpected per-venue state: %+v", report)
	}
	mustBestBid(t, b, 10.01)

	report = b.OnExecute("c", 2)
	if report == nil {
		t.Fatalf("expected execution report")
	}
	if !priceEq(report.ExecPrice, 10.01) || report.LevelRemaining != 0 || report.Venues != "" {
		t.Errorf("depleted level should report zeros: %+v", report)
	}
	for v, q := range report.PerVenueQty {
		if q != 0 {
			t.Errorf("venue %d should be zero after depletion, got %d", v, q)
		}
	}
	mustBestBid(t, b, 10.00)
}

func TestReplaceAtomicity(t *testing.T) {
	b := New()
	b.OnAdd("x", VenueARCA, SideAsk, 20.00, 4)

	change, err := b.OnReplace("y", "x", VenueARCA, SideAsk, 19.99, 4)
	if err != nil {
		t.Fatalf("OnReplace err: %v", err)
	}
	if change == nil {
		t.Fatalf("improving replace should report a change")
	}
	if !priceEq(change.NewPrice, 19.99) || change.NewAgg != 4 {
		t.Errorf("new side wrong: %+v", change)
	}
	if !priceEq(change.OldPrice, 20.00) || change.OldAgg != 4 || change.OldVenues != "A" {
		t.Errorf("old side wrong: %+v", change)
	}
	mustBestAsk(t, b, 19.99)

	if b.orders.live("x") {
		t.Errorf("old id should be dead after replace")
	}
	if !b.orders.live("y") {
		t.Errorf("new id should be live after replace")
	}
}

func TestReplaceDeadOldIDStillAdds(t *testing.T) {
	b := New()

	change, err := b.OnReplace("y", "ghost", VenueCBOE, SideAsk, 20.00, 4)
	if err != nil {
		t.Fatalf("OnReplace err: %v", err)
	}
	if change != nil {
		t.Fatalf("first level should not report, got %+v", change)
	}
	mustBestAsk(t, b, 20.00)
	if !b.orders.live("y") {
		t.Errorf("add half of replace should have applied")
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	b := New()
	b.OnCancel("ghost")

	if _, ok := b.BestBid(); ok {
		t.Errorf("book should still be empty on bid side")
	}
	if _, ok := b.BestAsk(); ok {
		t.Errorf("book should still be empty on ask side")
	}
}

func TestExecuteUnknownIsNoop(t *testing.T) {
	b := New()
	if report := b.OnExecute("ghost", 5); report != nil {
		t.Fatalf("execute of unknown id should return nil, got %+v", report)
	}
}

// Add-then-cancel must restore the book exactly.
func TestAddCancelRestoresBook(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)
	b.OnAdd("b", VenueISE, SideBid, 10.02, 3)

	before, _ := b.Snapshot(SideBid, 10.02)
	liveBefore := b.LiveOrders()

	b.OnAdd("o", VenuePHLX, SideBid, 10.05, 7)
	b.OnCancel("o")

	mustBestBid(t, b, 10.02)
	after, _ := b.Snapshot(SideBid, 10.02)
	if len(after) != len(before) {
		t.Fatalf("snapshot diverged: %v vs %v", after, before)
	}
	for venue, qty := range before {
		if after[venue] != qty {
			t.Fatalf("snapshot diverged at %s: %d vs %d", venue, after[venue], qty)
		}
	}
	if gone, _ := b.Snapshot(SideBid, 10.05); len(gone) != 0 {
		t.Fatalf("cancelled level should be gone, got %v", gone)
	}
	if b.LiveOrders() != liveBefore {
		t.Fatalf("live order count diverged: %d vs %d", b.LiveOrders(), liveBefore)
	}
}

// Full execute removes the order; a later cancel is a no-op.
func TestFullExecuteThenCancel(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideAsk, 20.00, 5)

	report := b.OnExecute("a", 9)
	if report == nil || report.LevelRemaining != 0 {
		t.Fatalf("over-execute should deplete: %+v", report)
	}
	if b.orders.live("a") {
		t.Fatalf("fully executed order should be dead")
	}

	b.OnCancel("a")
	if _, ok := b.BestAsk(); ok {
		t.Errorf("cancel after full execute should change nothing")
	}
}

func TestPartialExecuteKeepsOrderLive(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideAsk, 20.00, 5)

	report := b.OnExecute("a", 2)
	if report == nil || report.LevelRemaining != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	m, ok := b.orders.get("a")
	if !ok || m.qty != 3 {
		t.Fatalf("expected live order with qty 3, got %+v", m)
	}

	b.OnCancel("a")
	if _, ok := b.BestAsk(); ok {
		t.Errorf("cancelling the remainder should empty the side")
	}
}

// Total booked quantity must equal the sum over live orders.
func TestBookQuantityConservation(t *testing.T) {
	b := New()
	b.OnAdd("a", VenueCBOE, SideBid, 10.00, 5)
	b.OnAdd("b", VenueISE, SideBid, 10.00, 7)
	b.OnAdd("c", VenueISE, SideBid, 10.02, 4)
	b.OnExecute("b", 3)

	var booked uint32
	for _, tick := range []int{1000, 1002} {
		if pl := b.bid.level(tick); pl != nil {
			booked += pl.aggregate()
		}
	}
	var live uint32
	for _, m := range b.orders.orders {
		live += m.qty
	}
	if booked != live || booked != 13 {
		t.Fatalf("booked %d, live %d, expected 13", booked, live)
	}
}

func TestOnAddValidation(t *testing.T) {
	b := New()

	if _, err := b.OnAdd("a", VenueID(99), SideBid, 10.00, 5); err != ErrUnknownVenue {
		t.Errorf("expected ErrUnknownVenue, got %v", err)
	}
	if _, err := b.OnAdd("a", VenueCBOE, Side("BUY"), 10.00, 5); err != ErrUnknownSide {
		t.Errorf("expected ErrUnknownSide, got %v", err)
	}
	if _, err := b.OnAdd("a", VenueCBOE, SideBid, -1.00, 5); err != ErrPriceOutOfRange {
		t.Errorf("expected ErrPriceOutOfRange, got %v", err)
	}
	if _, err := b.OnAdd("a", VenueCBOE, SideBid, float64(maxTick)*Tick+1, 5); err != ErrPriceOutOfRange {
		t.Errorf("expected ErrPriceOutOfRange on overflow, got %v", err)
	}
	if _, err := b.OnAdd("", VenueCBOE, SideBid, 10.00, 5); err != ErrBadEvent {
		t.Errorf("expected ErrBadEvent on empty id, got %v", err)
	}
	if _, err := b.OnAdd("a", VenueCBOE, SideBid, 10.00, 0); err != ErrBadEvent {
		t.Errorf("expected ErrBadEvent on zero qty, got %v", err)
	}

	// failed adds must not mutate
	if _, ok := b.BestBid(); ok {
		t.Fatalf("failed adds should leave the book empty")
	}

	b.OnAdd("dup", VenueCBOE, SideBid, 10.00, 5)
	if _, err := b.OnAdd("dup", VenueISE, SideBid, 10.01, 5); err != ErrDuplicateOrder {
		t.Errorf("expected ErrDuplicateOrder, got %v", err)
	}
	mustBestBid(t, b, 10.00)
}

func TestOnBatch(t *testing.T) {
	b := New()

	results, err := b.OnBatch([]Event{
		{Type: EventAdd, OrderID: "a", Venue: 'C', Side: SideBid, Price: 10.00, Qty: 5},
		{Type: EventAdd, OrderID: "b", Venue: 'I', Side: SideBid, Price: 10.01, Qty: 3},
		{Type: EventCancel, OrderID: "ghost"},
		{Type: EventExecute, OrderID: "b", ExecQty: 3},
		{Type: EventReplace, OrderID: "a2", OldOrderID: "a", Venue: 'C', Side: SideBid, Price: 10.02, Qty: 5},
	})
	if err != nil {
		t.Fatalf("OnBatch err: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 reportable results, got %d", len(results))
	}

	change, ok := results[0].(*NbboChange)
	if !ok || !priceEq(change.NewPrice, 10.01) {
		t.Errorf("result 0 should be the improving add, got %+v", results[0])
	}
	report, ok := results[1].(*ExecutionReport)
	if !ok || report.LevelRemaining != 0 {
		t.Errorf("result 1 should be the depleting execute, got %+v", results[1])
	}
	change, ok = results[2].(*NbboChange)
	if !ok || !priceEq(change.NewPrice, 10.02) || !priceEq(change.OldPrice, 10.00) {
		t.Errorf("result 2 should be the replace change, got %+v", results[2])
	}
	mustBestBid(t, b, 10.02)
}

func TestOnBatchErrorStopsButKeepsApplied(t *testing.T) {
	b := New()

	results, err := b.OnBatch([]Event{
		{Type: EventAdd, OrderID: "a", Venue: 'C', Side: SideBid, Price: 10.00, Qty: 5},
		{Type: EventAdd, OrderID: "bad", Venue: '?', Side: SideBid, Price: 10.01, Qty: 3},
		{Type: EventAdd, OrderID: "never", Venue: 'C', Side: SideBid, Price: 10.02, Qty: 1},
	})
	if err != ErrUnknownVenue {
		t.Fatalf("expected ErrUnknownVenue, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("no reportable results expected, got %d", len(results))
	}
	mustBestBid(t, b, 10.00)
	if b.orders.live("never") {
		t.Fatalf("events after the failing one must not be applied")
	}
}

func TestHighVolumeEvents(t *testing.T) {
	b := New()

	num := 10_000
	for i := 0; i < num; i++ {
		oid := fmt.Sprintf("ORD-%d", i)
		venue := VenueID(i % NumVenues)
		price := 10.00 + float64(i%100)*Tick
		if _, err := b.OnAdd(oid, venue, SideBid, price, 10); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	if b.LiveOrders() != num {
		t.Fatalf("expected %d live orders, got %d", num, b.LiveOrders())
	}
	mustBestBid(t, b, 10.99)

	for i := 0; i < num; i += 2 {
		b.OnCancel(fmt.Sprintf("ORD-%d", i))
	}
	if b.LiveOrders() != num/2 {
		t.Fatalf("expected %d live orders after cancels, got %d", num/2, b.LiveOrders())
	}
}

func BenchmarkBookAddCancel(b *testing.B) {
	bk := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		oid := fmt.Sprintf("ORD-%d", i)
		price := 10.00 + float64(i%500)*Tick
		bk.OnAdd(oid, VenueID(i%NumVenues), SideBid, price, 10) // nolint
		if i%4 == 3 {
			bk.OnCancel(fmt.Sprintf("ORD-%d", i-1))
		}
	}
}
