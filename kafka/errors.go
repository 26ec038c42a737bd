package kafka

import "fmt"

var (
	// ErrNoConsumerInstances is returned when the consumer has no instances.
	ErrNoConsumerInstances = fmt.Errorf("kafka: no consumer instances")

	// ErrUnknownOp is returned for a change message with an unknown op.
	ErrUnknownOp = fmt.Errorf("kafka: unknown change op")
)

// ErrInvalidConfig reports an unusable configuration.
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("kafka: invalid config: %s", msg)
}

// ErrConnection wraps a connection failure.
func ErrConnection(err error) error {
	return fmt.Errorf("kafka: connection failed: %w", err)
}

// ErrSubscribe wraps a topic subscription failure.
func ErrSubscribe(topics []string, err error) error {
	return fmt.Errorf("kafka: subscribe to topics %v failed: %w", topics, err)
}

// ErrConsume wraps a consume failure.
func ErrConsume(err error) error {
	return fmt.Errorf("kafka: consume message failed: %w", err)
}

// ErrCommit wraps an offset commit failure.
func ErrCommit(err error) error {
	return fmt.Errorf("kafka: commit offsets failed: %w", err)
}

// ErrDecode wraps an undecodable change message.
func ErrDecode(err error) error {
	return fmt.Errorf("kafka: decode change message failed: %w", err)
}
