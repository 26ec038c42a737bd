package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/store"
	"go.uber.org/zap"
)

// Change ops understood by the feed.
const (
	OpSet    = "set"
	OpDelete = "delete"
)

// ChangeMessage is the wire format of one feed entry.
type ChangeMessage struct {
	Op    string `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// FeedHandler returns a ConsumerMsgHandler that applies change messages
// to target. Undecodable messages and unknown ops fail the handler;
// invalid keys are rejected by the store and surface the same way. The
// consume loop logs handler failures and keeps going.
func FeedHandler(log logger.Logger, target store.Store) ConsumerMsgHandler {
	return func(ctx context.Context, msg *Message) error {
		var change ChangeMessage
		if err := json.Unmarshal(msg.Value, &change); err != nil {
			return ErrDecode(err)
		}

		switch change.Op {
		case OpSet:
			if err := target.Add(change.Key, change.Value); err != nil {
				return err
			}
			log.Debug("feed applied set", zap.String("key", change.Key))
		case OpDelete:
			present := target.Remove(change.Key)
			log.Debug("feed applied delete",
				zap.String("key", change.Key),
				zap.Bool("present", present),
			)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOp, change.Op)
		}
		return nil
	}
}

// Feed ties a Consumer to a target store.
type Feed struct {
	consumer Consumer
	logger   logger.Logger
	target   store.Store
}

// NewFeed creates a change feed applying cfg's topics to target.
func NewFeed(log logger.Logger, cfg *ConsumerConfig, target store.Store) (*Feed, error) {
	if target == nil {
		return nil, ErrInvalidConfig("target store is required")
	}

	consumer, err := NewConsumer(log, cfg)
	if err != nil {
		return nil, err
	}

	return &Feed{
		consumer: consumer,
		logger:   log,
		target:   target,
	}, nil
}

// Start begins consuming and applying changes.
func (f *Feed) Start(ctx context.Context) error {
	return f.consumer.Start(ctx, FeedHandler(f.logger, f.target))
}

// Close stops the underlying consumer.
func (f *Feed) Close() error {
	return f.consumer.Close()
}
