// Package keylock provides an in-process mutex per string key.
//
// Waiting honors context cancellation, and slots of keys nobody holds or waits
// for are released, so the map does not grow with the key space.
package keylock

import (
	"context"
	"sync"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// Locker is a keyed mutex. The zero value is not usable; call New.
type Locker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

func New() *Locker {
	return &Locker{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done. The returned function
// releases the key; calling it more than once has no further effect.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquireSlot(key)

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.releaseSlot(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.releaseSlot(key, s)
		return nil, ctx.Err()
	}
}

// Len is the number of keys currently held or waited for.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func (l *Locker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *Locker) releaseSlot(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
