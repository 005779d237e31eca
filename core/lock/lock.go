// Package lock serializes seed and denormalize runs across processes with a
// Redis lock. A nil client turns every lock into a no-op.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
)

// SeedKey guards every command that rewrites inventory tables.
const SeedKey = "inventory:seed"

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("lock: held by another process")

// Release frees a lock obtained with Obtain. It is safe to call more than once.
type Release func()

// Obtain takes key for ttl and refreshes it every ttl/2 until released, so a
// run longer than ttl keeps the key. With a nil locker it returns immediately.
func Obtain(ctx context.Context, locker *redislock.Client, key string, ttl time.Duration) (Release, error) {
	if locker == nil {
		return func() {}, nil
	}
	l, err := locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	go keepAlive(l, ttl, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// context.Background so a canceled run still frees the key
			_ = l.Release(context.Background())
		})
	}, nil
}

func keepAlive(l *redislock.Lock, ttl time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if ttl < 2*time.Millisecond {
		<-stop
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// a failed refresh leaves the key to expire; the next tick retries
			_ = l.Refresh(context.Background(), ttl, nil)
		}
	}
}
