package db

import "fmt"

// ErrConnectionNotEstablished is returned before a connection exists.
var ErrConnectionNotEstablished = fmt.Errorf("db: database connection not established")

// ErrInvalidConfig reports an unusable configuration.
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("db: invalid config: %s", msg)
}

// ErrConnection wraps a connection failure.
func ErrConnection(err error) error {
	return fmt.Errorf("db: connection failed: %w", err)
}

// ErrQuery wraps a failed key/value load query.
func ErrQuery(err error) error {
	return fmt.Errorf("db: query failed: %w", err)
}
