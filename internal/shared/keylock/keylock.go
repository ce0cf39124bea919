// Package keylock provides a mutex keyed by series ID.
//
// The store serializes loads for the same series so that two concurrent
// restatement ingests cannot interleave; loads for different series proceed
// in parallel.
package keylock

import "sync"

// KeyedMutex hands out one mutex per key. Mutexes are created on first use
// and kept for the process lifetime; the key space (series IDs) is small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// New returns an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uint]*sync.Mutex)}
}

func (m *KeyedMutex) get(key uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Lock acquires the mutex for key, blocking until it is free.
func (m *KeyedMutex) Lock(key uint) {
	m.get(key).Lock()
}

// Unlock releases the mutex for key.
func (m *KeyedMutex) Unlock(key uint) {
	m.get(key).Unlock()
}
