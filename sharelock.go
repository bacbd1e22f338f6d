package smartpoll

import "sync"

// ShareLock is a read/write lock supporting a non-blocking exclusive
// acquire, used to elect exactly one initializer goroutine out of many
// racing to perform the same expensive, idempotent work.
//
// The zero value is ready to use.
type ShareLock struct {
	mu sync.RWMutex
}

// StartExclusive attempts to acquire exclusive access. With noWait, it
// returns false immediately if any holder (shared or exclusive) is present;
// otherwise it blocks until exclusive access is granted.
func (l *ShareLock) StartExclusive(noWait bool) bool {
	if noWait {
		return l.mu.TryLock()
	}
	l.mu.Lock()
	return true
}

// StopExclusive releases exclusive access acquired via StartExclusive.
func (l *ShareLock) StopExclusive() {
	l.mu.Unlock()
}

// Sharing acquires a shared (read) lease for the duration of fn. Multiple
// shared leases may coexist; a shared lease blocks while exclusive is held,
// and vice versa. Callers that lose the StartExclusive race use Sharing with
// a no-op fn as a cheap barrier: by the time it returns, the winner's update
// is guaranteed visible.
func (l *ShareLock) Sharing(fn func()) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn()
}
