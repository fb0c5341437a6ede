package service

import "sync"

// PlanLocks serializes read-modify-write cycles per user. Every operation
// that mutates a plan locks the owner's key first, so concurrent duplicate
// submissions cannot interleave partial mutations or double-count streaks.
type PlanLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPlanLocks() *PlanLocks {
	return &PlanLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the user's mutex and returns the unlock func.
func (l *PlanLocks) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
