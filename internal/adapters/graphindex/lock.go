package graphindex

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is an advisory exclusive lock on a path
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// LockFactory creates FileLock instances
type LockFactory interface {
	New(path string) FileLock
}

// FlockFactory locks through github.com/gofrs/flock
type FlockFactory struct{}

func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}

// NopLockFactory hands out locks that always succeed, for MemFS-backed tests
type NopLockFactory struct{}

func (NopLockFactory) New(string) FileLock { return nopLock{} }

type nopLock struct{}

func (nopLock) TryLockContext(context.Context, time.Duration) (bool, error) { return true, nil }
func (nopLock) Unlock() error                                               { return nil }
