// Package db provides the MySQL-backed key-value source.
//
// It wraps gorm with the module's logging and config conventions and
// exposes KVSource, which loads a key/value table into a map for
// store.Syncer to apply.
package db

import (
	"context"

	"gorm.io/gorm"
)

// Database is the database connection contract.
type Database interface {
	DB() (*gorm.DB, error)
	Ping(ctx context.Context) error
	Close() error
}
