package triplock

import (
	"sync"
)

// KeyedLocker serializes plan regeneration per group so two concurrent
// requests for the same group cannot interleave their trip writes.
type KeyedLocker interface {
	Lock(key string)
	Unlock(key string)
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{
		locks: make(map[string]*lockEntry),
	}
}

func (k *KeyedLock) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

func (k *KeyedLock) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key) // cleanup idle entries
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
