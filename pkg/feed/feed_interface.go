package feed

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/feed/model"
)

// IFeed is the surface gateways use to hand normalized events to the feed
// service and answer top-of-book queries.
type IFeed interface {
	ApplyEvent(ctx context.Context, ev *model.BookEvent) error
	ApplyBatch(ctx context.Context, evs []*model.BookEvent) error
	BestBid(symbol string) (float64, bool)
	BestAsk(symbol string) (float64, bool)
}
