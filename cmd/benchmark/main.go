package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joripage/nbbo-book/pkg/book"
)

const (
	numEvents = 1_000_000
	minTick   = 10_000 // 100.00
	maxTick   = 20_000 // 200.00
)

func main() {
	bookManager := book.NewManager()

	totalChanges := 0
	bookManager.RegisterNbboCallback(func(symbol string, change *book.NbboChange) {
		totalChanges++
		if totalChanges <= 5 {
			fmt.Printf("NBBO %s %s %.2f (agg %d) <- %.2f (agg %d, venues %s)\n",
				symbol, change.Side, change.NewPrice, change.NewAgg,
				change.OldPrice, change.OldAgg, change.OldVenues)
		}
	})

	live := make([]string, 0, numEvents)

	start := time.Now()
	for i := 0; i < numEvents; i++ {
		oid := fmt.Sprintf("ORD-%07d", i)
		side := book.SideBid
		if rand.Intn(2) == 0 {
			side = book.SideAsk
		}
		tick := minTick + rand.Intn(maxTick-minTick)
		venue := book.VenueID(rand.Intn(book.NumVenues))

		switch {
		case len(live) > 0 && rand.Intn(4) == 0: // cancel
			j := rand.Intn(len(live))
			_, err := bookManager.Apply("ABC", book.Event{Type: book.EventCancel, OrderID: live[j]})
			if err != nil {
				panic(err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		case len(live) > 0 && rand.Intn(4) == 0: // execute
			j := rand.Intn(len(live))
			_, err := bookManager.Apply("ABC", book.Event{
				Type:    book.EventExecute,
				OrderID: live[j],
				ExecQty: uint32(rand.Intn(10) + 1),
			})
			if err != nil {
				panic(err)
			}
		default:
			_, err := bookManager.Apply("ABC", book.Event{
				Type:    book.EventAdd,
				OrderID: oid,
				Venue:   venue.Code(),
				Side:    side,
				Price:   book.TickToPrice(tick),
				Qty:     uint32(rand.Intn(100) + 1),
			})
			if err != nil {
				panic(err)
			}
			live = append(live, oid)
		}
	}
	elapsed := time.Since(start)

	bid, _ := bookManager.BestBid("ABC")
	ask, _ := bookManager.BestAsk("ABC")

	fmt.Println("--------")
	fmt.Printf("Total Events      : %d\n", numEvents)
	fmt.Printf("Total NBBO Changes: %d\n", totalChanges)
	fmt.Printf("Best Bid / Ask    : %.2f / %.2f\n", bid, ask)
	fmt.Printf("Time Taken        : %s (%.0f events/s)\n", elapsed, float64(numEvents)/elapsed.Seconds())
}
