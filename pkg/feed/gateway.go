package feed

import (
	"context"

	"github.com/joripage/nbbo-book/pkg/book"
)

// QuoteGateway delivers NBBO changes and execution reports to downstream
// consumers (FIX sessions, sockets, ...). Implementations must not block
// the event path.
type QuoteGateway interface {
	Start(ctx context.Context) error

	// feed to consumers
	OnNbboChange(ctx context.Context, symbol string, change *book.NbboChange)
	OnExecReport(ctx context.Context, symbol string, report *book.ExecutionReport)
}
