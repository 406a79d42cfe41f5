package service

import (
	"sync"

	"github.com/google/uuid"
)

// cartLocks serializes the read-modify-write sequence per cart owner.
// Carts are 1:1 with users, so the user ID is the lock key. Entries are
// reference-counted and removed once no request holds or waits on them.
type cartLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*cartLock
}

type cartLock struct {
	mu   sync.Mutex
	refs int
}

func newCartLocks() *cartLocks {
	return &cartLocks{locks: make(map[uuid.UUID]*cartLock)}
}

// Acquire blocks until the caller holds the lock for key, and returns the
// release function.
func (c *cartLocks) Acquire(key uuid.UUID) func() {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &cartLock{}
		c.locks[key] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, key)
		}
		c.mu.Unlock()
	}
}
