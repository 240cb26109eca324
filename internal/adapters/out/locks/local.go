// Package locks provides ports.Locker backends: an in-process keyed mutex for
// a single instance and a Redis lock for several instances sharing a database.
package locks

import (
	"context"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/keylock"
)

// LocalLocker serializes keys inside one process.
type LocalLocker struct {
	keys *keylock.Locker
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: keylock.New()}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	release, err := l.keys.Lock(ctx, key)
	if err != nil {
		return nil, err
	}

	return func(context.Context) error {
		release()
		return nil
	}, nil
}
