package eventstore

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/joripage/nbbo-book/pkg/feed/model"
)

// maxHistory bounds the per-symbol change history; older entries fall off
// the front.
const maxHistory = 1024

type InMemoryEventStore struct {
	mu      sync.RWMutex
	changes map[string]*deque.Deque[*model.NbboChangeRecord]
	execs   map[string]*deque.Deque[*model.ExecReportRecord]
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		changes: make(map[string]*deque.Deque[*model.NbboChangeRecord]),
		execs:   make(map[string]*deque.Deque[*model.ExecReportRecord]),
	}
}

func (s *InMemoryEventStore) AddChange(rec *model.NbboChangeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.changes[rec.Symbol]
	if q == nil {
		q = &deque.Deque[*model.NbboChangeRecord]{}
		s.changes[rec.Symbol] = q
	}
	q.PushBack(rec)
	for q.Len() > maxHistory {
		q.PopFront()
	}
}

func (s *InMemoryEventStore) AddExec(rec *model.ExecReportRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.execs[rec.Symbol]
	if q == nil {
		q = &deque.Deque[*model.ExecReportRecord]{}
		s.execs[rec.Symbol] = q
	}
	q.PushBack(rec)
	for q.Len() > maxHistory {
		q.PopFront()
	}
}

func (s *InMemoryEventStore) LatestChange(symbol string) *model.NbboChangeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := s.changes[symbol]
	if q == nil || q.Len() == 0 {
		return nil
	}
	return q.Back()
}

// RecentChanges returns up to n most recent changes for symbol, oldest first.
func (s *InMemoryEventStore) RecentChanges(symbol string, n int) []*model.NbboChangeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := s.changes[symbol]
	if q == nil {
		return nil
	}
	start := q.Len() - n
	if start < 0 {
		start = 0
	}
	out := make([]*model.NbboChangeRecord, 0, q.Len()-start)
	for i := start; i < q.Len(); i++ {
		out = append(out, q.At(i))
	}
	return out
}
