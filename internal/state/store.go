package state

import (
	"slices"
	"sync"

	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
)

// Commit describes one applied transition. Prev and Next are shared with
// every listener and must be treated as read-only.
type Commit struct {
	Action Action
	Prev   models.UserData
	Next   models.UserData
}

// Listener observes committed transitions. It may call Dispatch; the action
// is queued and applied after the current one finishes notifying.
type Listener func(Commit)

// Dispatcher is the write side of a Store.
type Dispatcher interface {
	Dispatch(Action) bool
}

type subscription struct {
	id int
	fn Listener
}

// Store holds the current snapshot and applies actions one at a time in
// FIFO order. Dispatches made while a transition is being applied or its
// listeners are running are queued rather than nested.
type Store struct {
	mu        sync.Mutex
	reducer   *Reducer
	state     models.UserData
	queue     []Action
	draining  bool
	listeners []subscription
	nextSub   int
}

// NewStore returns a store holding initial.
func NewStore(reducer *Reducer, initial models.UserData) *Store {
	return &Store{reducer: reducer, state: initial.Normalize().Clone()}
}

// GetState returns a copy of the current snapshot.
func (s *Store) GetState() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to run after every transition that changed the
// snapshot. The returned function removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
	}
}

// Dispatch applies a and then any actions queued by listeners. It reports
// whether a itself changed the snapshot. A call made while another dispatch
// is draining only enqueues a and returns false. A panicking listener drops
// the rest of the queue and leaves the store ready for the next dispatch.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	s.queue = append(s.queue, a)
	if s.draining {
		s.mu.Unlock()
		return false
	}
	s.draining = true
	defer func() {
		s.queue = nil
		s.draining = false
		s.mu.Unlock()
	}()

	first := true
	result := false
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		prev := s.state
		updated, changed := s.reducer.Reduce(prev, next)
		if first {
			result = changed
			first = false
		}
		if !changed {
			logger.Debug("Action was a no-op", "kind", next.Kind())
			continue
		}
		s.state = updated
		s.notify(slices.Clone(s.listeners), Commit{Action: next, Prev: prev, Next: updated})
	}
	return result
}

// notify runs listeners without holding the lock. Called with s.mu held.
func (s *Store) notify(listeners []subscription, commit Commit) {
	s.mu.Unlock()
	defer s.mu.Lock()
	for _, sub := range listeners {
		sub.fn(commit)
	}
}
