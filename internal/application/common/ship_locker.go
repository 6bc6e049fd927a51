package common

import "sync"

// ShipLocker serializes writers per ship id.
//
// Settlement, ordering and dropping are read-modify-write cycles on one ship;
// holding the ship's lock for the whole cycle keeps two of them from
// interleaving inside one process. Different ships never contend.
type ShipLocker struct {
	mu    sync.Mutex
	locks map[uint32]*shipLock
}

type shipLock struct {
	mu      sync.Mutex
	holders int
}

func NewShipLocker() *ShipLocker {
	return &ShipLocker{locks: make(map[uint32]*shipLock)}
}

// Lock blocks until the ship's lock is held and returns its release function
func (l *ShipLocker) Lock(shipID uint32) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[shipID]
	if !ok {
		entry = &shipLock{}
		l.locks[shipID] = entry
	}
	entry.holders++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			l.mu.Lock()
			entry.holders--
			if entry.holders == 0 {
				delete(l.locks, shipID)
			}
			l.mu.Unlock()
		})
	}
}

// Held returns how many ships currently have a lock entry
func (l *ShipLocker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
