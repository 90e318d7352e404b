package book

import "sync"

// Manager shards consolidated books by symbol. The core Book performs no
// locking; the per-book mutex here is the host-side serialization required
// by the Book contract, so mutating events and read-only queries never
// overlap on the same instrument.
type Manager struct {
	books     sync.Map
	callbacks []func(symbol string, change *NbboChange)
}

type bookHandle struct {
	mu   sync.Mutex
	book *Book
}

func NewManager() *Manager {
	return &Manager{
		books: sync.Map{},
	}
}

// RegisterNbboCallback adds a callback fired on every reportable NBBO change.
// Callbacks run while the book's lock is held; keep them short.
func (s *Manager) RegisterNbboCallback(cb func(symbol string, change *NbboChange)) {
	s.callbacks = append(s.callbacks, cb)
}

// Apply routes one event into the symbol's book and returns its reportable
// result, if any.
func (s *Manager) Apply(symbol string, ev Event) (Result, error) {
	h := s.getOrCreateBook(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.book.apply(&ev)
	if err != nil {
		return nil, err
	}
	if change, ok := res.(*NbboChange); ok {
		for _, cb := range s.callbacks {
			cb(symbol, change)
		}
	}
	return res, nil
}

// ApplyBatch applies a sequence of events for one symbol under a single lock.
func (s *Manager) ApplyBatch(symbol string, events []Event) ([]Result, error) {
	h := s.getOrCreateBook(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Result, 0, len(events))
	for i := range events {
		res, err := h.book.apply(&events[i])
		if err != nil {
			return out, err
		}
		if res == nil {
			continue
		}
		if change, ok := res.(*NbboChange); ok {
			for _, cb := range s.callbacks {
				cb(symbol, change)
			}
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *Manager) BestBid(symbol string) (float64, bool) {
	h := s.getOrCreateBook(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.book.BestBid()
}

func (s *Manager) BestAsk(symbol string) (float64, bool) {
	h := s.getOrCreateBook(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.book.BestAsk()
}

func (s *Manager) Snapshot(symbol string, side Side, price float64) (map[string]uint32, error) {
	h := s.getOrCreateBook(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.book.Snapshot(side, price)
}

func (s *Manager) getOrCreateBook(symbol string) *bookHandle {
	if val, ok := s.books.Load(symbol); ok {
		return val.(*bookHandle)
	}
	actual, _ := s.books.LoadOrStore(symbol, &bookHandle{book: New()})
	return actual.(*bookHandle)
}
