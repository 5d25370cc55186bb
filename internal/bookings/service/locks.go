package service

import "sync"

// roomLocks hands out one mutex per room identity. Holding a room's mutex is
// the critical section that makes the ledger's read-validate-write sequence
// atomic per room; operations on different rooms never contend.
//
// Locks are never removed: the room catalog is a small, seeded set, so the
// map stays bounded.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *roomLocks) forRoom(roomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[roomID] = lock
	}
	return lock
}
