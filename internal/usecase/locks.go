package usecase

import "sync"

// Locks hands out one mutex per user id. Holding a user's lock across the
// balance check and the debit append serializes concurrent withdrawals and
// transfers from the same payer, closing the check-then-act overdraft window.
// Only the payer is ever locked, so no lock ordering is needed.
type Locks struct {
	mu    sync.Mutex             // protects locks
	locks map[string]*sync.Mutex // one mutex per user id
}

// NewLocks creates an empty lock set; one instance is shared by every use
// case that debits a user.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*sync.Mutex)}
}

// For returns the mutex for the given user id, creating it on first use.
func (l *Locks) For(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.locks[userID]; !ok {
		l.locks[userID] = &sync.Mutex{}
	}
	return l.locks[userID]
}
