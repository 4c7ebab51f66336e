package ports

import "context"

// Locker acquires a named lock. The returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
