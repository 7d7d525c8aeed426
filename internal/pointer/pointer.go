// Package pointer carries pointer positions from an event source to the frame
// loop. Events may arrive from any goroutine; the loop reads the latest value
// at the start of its next tick. Nothing is queued.
package pointer

import "sync"

// Latch holds the most recent pointer position. Every Store overwrites the
// previous value and bumps the sequence number.
type Latch struct {
	mu   sync.Mutex
	x, y float64
	seq  uint64
}

func (l *Latch) Store(x, y float64) {
	l.mu.Lock()
	l.x, l.y = x, y
	l.seq++
	l.mu.Unlock()
}

// Load returns the latest position and how many stores have happened.
func (l *Latch) Load() (x, y float64, seq uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.x, l.y, l.seq
}

type Handler func(x, y float64)

// Source fans pointer moves out to independent subscribers.
type Source struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
	last   Latch
}

func NewSource() *Source {
	return &Source{subs: make(map[int]Handler)}
}

// Subscribe registers h and returns a cancel func. Cancel is idempotent.
func (s *Source) Subscribe(h Handler) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = h
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Publish delivers a move to every subscriber synchronously.
func (s *Source) Publish(x, y float64) {
	s.last.Store(x, y)

	s.mu.RLock()
	handlers := make([]Handler, 0, len(s.subs))
	for _, h := range s.subs {
		handlers = append(handlers, h)
	}
	s.mu.RUnlock()

	for _, h := range handlers {
		h(x, y)
	}
}

// Last is the most recent published position.
func (s *Source) Last() (x, y float64, seq uint64) {
	return s.last.Load()
}

func (s *Source) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
