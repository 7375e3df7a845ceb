package server

import "sync"

// pathLocks serializes generation runs per output path so concurrent
// requests for the same foot cannot interleave their exports.
type pathLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{m: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key, creating it on first use, and returns
// the matching unlock.
func (l *pathLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.m[key]
	if !ok {
		m = &sync.Mutex{}
		l.m[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
