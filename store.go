package folio

import (
	"context"
	"errors"
)

// StorageKey is the key of the ledger blob in a Store.
const StorageKey = "portfolio-app-data-v2"

// ErrNotFound is returned by a Store that has no value for a key.
var ErrNotFound = errors.New("key not found")

// Store is a key-value blob store. Save overwrites the full value.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
