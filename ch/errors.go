package ch

import "fmt"

// ErrConnectionClosed is returned when operations run on a closed client.
var ErrConnectionClosed = fmt.Errorf("ch: connection is closed")

// ErrInvalidConfig reports an unusable configuration.
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("ch: invalid config: %s", msg)
}

// ErrConnection wraps a connection failure.
func ErrConnection(err error) error {
	return fmt.Errorf("ch: connection failed: %w", err)
}

// ErrQuery wraps a failed key/value load query.
func ErrQuery(err error) error {
	return fmt.Errorf("ch: query failed: %w", err)
}
