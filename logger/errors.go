package logger

import "fmt"

// ErrBuildLogger wraps a zap build failure.
func ErrBuildLogger(err error) error {
	return fmt.Errorf("logger: failed to build logger: %w", err)
}

// ErrInvalidLevel reports an unusable log level.
func ErrInvalidLevel(level string, err error) error {
	return fmt.Errorf("logger: invalid level %q: %w", level, err)
}

// ErrInvalidEncoding reports an unusable encoding.
func ErrInvalidEncoding(encoding string) error {
	return fmt.Errorf("logger: invalid encoding %q, must be 'json' or 'console'", encoding)
}
