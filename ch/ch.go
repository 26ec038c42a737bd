// Package ch provides the ClickHouse-backed key-value source.
//
// It wraps clickhouse-go with the module's logging and config
// conventions and exposes KVSource, the ClickHouse counterpart of
// db.KVSource, for stores whose source of record lives in an analytics
// table.
package ch

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Client is the ClickHouse connection contract.
type Client interface {
	// Query executes a query and returns the rows.
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	// QueryRow executes a query expected to return at most one row.
	QueryRow(ctx context.Context, query string, args ...any) driver.Row
	// Ping verifies the connection.
	Ping(ctx context.Context) error
	// Close closes the connection.
	Close() error
}
