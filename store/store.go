// Package store provides the key-value backends holding the ledger blob.
//
// Every backend implements folio.Store: Load returns folio.ErrNotFound for a
// key never saved and Save overwrites the full value.
package store

import (
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
)

// Closer is a folio.Store holding resources.
type Closer interface {
	folio.Store
	Close() error
}

// Open returns the store described by cfg.
func Open(cfg config.Store) (Closer, error) {
	var (
		s   Closer
		err error
	)
	switch cfg.Kind {
	case config.StoreFile:
		s, err = NewFile(cfg.Path)
	case config.StoreSQLite:
		s, err = NewSQLite(cfg.Path)
	case config.StoreRedis:
		s = NewRedis(cfg.Addr, cfg.Key)
	case config.StoreMemory:
		s = NewMemory()
	default:
		err = fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
