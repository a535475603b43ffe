// Package storage provides the snapshot persistence boundary for the
// state containers. Each container owns one key and writes its entire
// serialized state under it after every mutation; the backend behind the
// Store interface is an injected dependency.
package storage

import (
	"context"
	"errors"
)

// Keys for the three independently-namespaced storage slots
const (
	SessionKey = "auth-storage"
	CartKey    = "cart-storage"
	OrderKey   = "order-storage"
)

// ErrKeyNotFound is returned by Load when no snapshot exists for a key
var ErrKeyNotFound = errors.New("storage: key not found")

// Store persists opaque state snapshots. Save overwrites the previous
// snapshot for the key (last writer wins); Load returns ErrKeyNotFound
// when the key has never been written.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}
