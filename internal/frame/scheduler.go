// Package frame provides the per-frame callback the simulations hang off.
// A Scheduler calls every registered Ticker once per frame, in registration
// order, on a single goroutine.
package frame

import (
	"context"
	"sync"
	"time"
)

const DefaultFPS = 60

type Ticker interface {
	Tick()
}

// TickFunc adapts a plain func to Ticker.
type TickFunc func()

func (f TickFunc) Tick() { f() }

type Observer interface {
	OnFrame(n int)
}

type entry struct {
	id int
	t  Ticker
}

type observerEntry struct {
	id int
	o  Observer
}

type Scheduler struct {
	mu        sync.Mutex
	fps       int
	nextID    int
	tickers   []entry
	observers []observerEntry
	frames    int
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewScheduler(fps int) *Scheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Scheduler{fps: fps, stop: make(chan struct{})}
}

func (s *Scheduler) FPS() int { return s.fps }

// AddObserver calls o after every frame. The returned func removes it and
// may be called any number of times.
func (s *Scheduler) AddObserver(o Observer) (remove func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observerEntry{id: id, o: o})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.observers {
				if e.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Scheduler) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Register adds t to the frame loop. The returned func removes it and may be
// called any number of times.
func (s *Scheduler) Register(t Ticker) (unregister func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.tickers = append(s.tickers, entry{id: id, t: t})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.tickers {
				if e.id == id {
					s.tickers = append(s.tickers[:i], s.tickers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers)
}

func (s *Scheduler) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Step runs one frame: every ticker, then every observer.
func (s *Scheduler) Step() {
	s.mu.Lock()
	tickers := make([]Ticker, len(s.tickers))
	for i, e := range s.tickers {
		tickers[i] = e.t
	}
	observers := make([]Observer, len(s.observers))
	for i, e := range s.observers {
		observers[i] = e.o
	}
	s.frames++
	n := s.frames
	s.mu.Unlock()

	for _, t := range tickers {
		t.Tick()
	}
	for _, o := range observers {
		o.OnFrame(n)
	}
}

// Run steps at the configured rate until ctx is done or Stop is called.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
