package fixgateway

import (
	"context"
	"log"
	"sync"

	"github.com/joripage/nbbo-book/pkg/book"
	"github.com/joripage/nbbo-book/pkg/feed"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

// FixGateway is the FIX 4.4 market-data edge of the feed service: it accepts
// venue sessions streaming incremental refreshes, feeds them into the
// consolidated book, and pushes NBBO snapshots back to subscribed consumers.
type FixGateway struct {
	cfg          *FixGatewayConfig
	app          *Application
	feedInstance feed.IFeed

	mu            sync.Mutex
	subscriptions map[string][]*MDSubscription
}

func NewFixGateway(cfg *FixGatewayConfig) *FixGateway {
	return &FixGateway{
		cfg:           cfg,
		subscriptions: make(map[string][]*MDSubscription),
	}
}

func (s *FixGateway) AddFeedInstance(f feed.IFeed) {
	s.feedInstance = f
}

func (s *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(s.cfg.ConfigFilepath, s)
	if err != nil {
		log.Printf("start app err=%v", err)
		return err
	}
	s.app = app
	return nil
}

func (s *FixGateway) Stop() {
	if s.app != nil {
		stopApp(s.app)
	}
}

// OnMarketData hands converted refresh entries to the feed service. Events
// the book rejects are logged and dropped; replayed feeds are allowed to
// carry duplicates.
func (s *FixGateway) OnMarketData(events []*model.BookEvent) {
	ctx := context.Background()
	for _, ev := range events {
		if err := s.feedInstance.ApplyEvent(ctx, ev); err != nil {
			zap.S().Warnf("apply event symbol=%s oid=%s err=%v", ev.Symbol, ev.OrderID, err)
		}
	}
}

func (s *FixGateway) Subscribe(symbol, mdReqID string, sessionID quickfix.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscriptions[symbol] {
		if sub.SessionID == sessionID {
			sub.MDReqID = mdReqID
			return
		}
	}
	s.subscriptions[symbol] = append(s.subscriptions[symbol], &MDSubscription{
		SessionID: sessionID,
		MDReqID:   mdReqID,
		Symbol:    symbol,
	})
}

func (s *FixGateway) Unsubscribe(symbol string, sessionID quickfix.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscriptions[symbol]
	for i, sub := range subs {
		if sub.SessionID == sessionID {
			s.subscriptions[symbol] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (s *FixGateway) subscribers(symbol string) []*MDSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscriptions[symbol]
	out := make([]*MDSubscription, len(subs))
	copy(out, subs)
	return out
}

// OnNbboChange broadcasts a one-entry snapshot to every session subscribed
// to the symbol.
func (s *FixGateway) OnNbboChange(ctx context.Context, symbol string, change *book.NbboChange) {
	for _, sub := range s.subscribers(symbol) {
		msg := nbboToSnapshot(symbol, sub.MDReqID, change)
		if err := quickfix.SendToTarget(msg, sub.SessionID); err != nil {
			log.Printf("send err=%v", err)
		}
	}
}

// OnExecReport is informational on the FIX edge: trades already travel on
// the venue feeds themselves.
func (s *FixGateway) OnExecReport(ctx context.Context, symbol string, report *book.ExecutionReport) {
	zap.S().Debugf("exec symbol=%s px=%.2f remaining=%d venues=%s",
		symbol, report.ExecPrice, report.LevelRemaining, report.Venues)
}
