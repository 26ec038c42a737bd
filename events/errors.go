package events

import "fmt"

// ErrRecorderClosed is returned when Start is called on a closed recorder.
var ErrRecorderClosed = fmt.Errorf("events: recorder is closed")

// ErrInvalidConfig reports an unusable configuration.
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("events: invalid config: %s", msg)
}
