package feed

import (
	"context"
	"strings"

	"github.com/joripage/nbbo-book/pkg/book"
	"github.com/redis/go-redis/v9"
)

// NbboCache keeps the latest top-of-book per symbol in a redis hash so other
// services can read the NBBO without replaying the feed.
type NbboCache struct {
	client *redis.Client
}

func NewNbboCache(client *redis.Client) *NbboCache {
	return &NbboCache{client: client}
}

func nbboKey(symbol string) string {
	return "nbbo:" + symbol
}

func (c *NbboCache) SetBest(ctx context.Context, symbol string, change *book.NbboChange) error {
	side := strings.ToLower(string(change.Side))
	return c.client.HSet(ctx, nbboKey(symbol), map[string]interface{}{
		side + "_price": change.NewPrice,
		side + "_agg":   int64(change.NewAgg),
	}).Err()
}

func (c *NbboCache) GetBest(ctx context.Context, symbol string) (map[string]string, error) {
	return c.client.HGetAll(ctx, nbboKey(symbol)).Result()
}
