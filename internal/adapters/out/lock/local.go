// Package lock implements ports.Locker in process and on Redis.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleetdelivery/internal/pkg/errs"
)

// DefaultWaitTimeout bounds how long Lock waits for a held key.
const DefaultWaitTimeout = 5 * time.Second

// LocalLocker is a keyed mutex for a single process. Keys are dropped once
// no goroutine holds or waits for them.
type LocalLocker struct {
	mu          sync.Mutex
	keys        map[string]*keyLock
	waitTimeout time.Duration
}

type keyLock struct {
	held chan struct{}
	refs int
}

func NewLocalLocker(waitTimeout time.Duration) *LocalLocker {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &LocalLocker{keys: make(map[string]*keyLock), waitTimeout: waitTimeout}
}

// Lock blocks until key is free, ctx ends or the wait timeout passes. The
// timeout yields errs.ErrConflict.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := l.acquireRef(key)

	timer := time.NewTimer(l.waitTimeout)
	defer timer.Stop()

	select {
	case k.held <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, k)
		return nil, fmt.Errorf("wait for lock %s: %w", key, ctx.Err())
	case <-timer.C:
		l.releaseRef(key, k)
		return nil, errs.NewConflictError("lock", key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-k.held
			l.releaseRef(key, k)
		})
	}, nil
}

func (l *LocalLocker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.keys[key]
	if !ok {
		k = &keyLock{held: make(chan struct{}, 1)}
		l.keys[key] = k
	}
	k.refs++
	return k
}

func (l *LocalLocker) releaseRef(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k.refs--
	if k.refs == 0 {
		delete(l.keys, key)
	}
}
