package transaction

import "sync"

// accountLocker serializes the balance read-modify-write per account.
// Without it two concurrent OUTBOUND requests can both pass the
// sufficient-funds check against a stale balance and overdraw the
// account. Locks are reference-counted so idle accounts cost nothing.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*accountLock)}
}

// Lock blocks until the account's lock is held and returns the
// matching unlock function.
func (l *accountLocker) Lock(accountID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[accountID]
	if !ok {
		entry = &accountLock{}
		l.locks[accountID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, accountID)
		}
		l.mu.Unlock()
	}
}
