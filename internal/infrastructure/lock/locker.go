// Package lock serializes schema changes on the same generated table.
package lock

import (
	"context"

	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
)

// Locker acquires a named lock. The returned func releases it.
type Locker = ports.Locker

var (
	_ Locker = (*LocalLocker)(nil)
	_ Locker = (*RedisLocker)(nil)
	_ Locker = Chain(nil)
)

// Chain acquires every locker in order and releases them in reverse.
// The local lock is taken first so one instance never contends with itself in Redis.
type Chain []Locker

// Lock implements Locker
func (c Chain) Lock(ctx context.Context, key string) (func(), error) {
	unlocks := make([]func(), 0, len(c))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, l := range c {
		unlock, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
