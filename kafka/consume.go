package kafka

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// consumeInstance is a single consumer within the group.
type consumeInstance struct {
	logger logger.Logger

	config *ConsumerConfig
	name   string
	c      *kafka.Consumer

	closed atomic.Bool
}

func newConsumeInstance(name string, config *ConsumerConfig, log logger.Logger) (*consumeInstance, error) {
	consumer, err := kafka.NewConsumer(config.BuildConfigMap())
	if err != nil {
		return nil, ErrConnection(err)
	}

	if err := consumer.SubscribeTopics(config.Topics, nil); err != nil {
		consumer.Close()
		return nil, ErrSubscribe(config.Topics, err)
	}

	return &consumeInstance{
		logger: log,
		config: config,
		name:   name,
		c:      consumer,
	}, nil
}

func (c *consumeInstance) Start(ctx context.Context, handler ConsumerMsgHandler) error {
	go func() {
		if err := c.consumeLoop(ctx, handler); err != nil {
			c.logger.Error("consumer loop exited with error",
				zap.String("instance", c.name),
				zap.Error(err))
		}
	}()
	c.logger.Info("consumer instance started", zap.String("instance", c.name))
	return nil
}

func (c *consumeInstance) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.c.Close()
	c.logger.Info("consumer instance closed", zap.String("instance", c.name))
	return nil
}

func (c *consumeInstance) consumeLoop(ctx context.Context, handler ConsumerMsgHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		default:
			ev := c.c.Poll(-1)
			if ev == nil {
				continue
			}

			switch e := ev.(type) {
			case *kafka.Message:
				if err := c.handleMessage(ctx, e, handler); err != nil {
					// One bad message must not stall the feed; log and move on.
					c.logger.Error("handle message failed",
						zap.String("topic", *e.TopicPartition.Topic),
						zap.Int32("partition", e.TopicPartition.Partition),
						zap.Int64("offset", int64(e.TopicPartition.Offset)),
						zap.Error(err),
					)
				}
			case kafka.Error:
				c.logger.Error("consumer error", zap.Int("code", int(e.Code())), zap.String("error", e.String()))
				if e.Code() == kafka.ErrAllBrokersDown {
					return ErrConsume(e)
				}
			case kafka.OffsetsCommitted:
				if e.Error != nil {
					c.logger.Error("failed to commit offsets", zap.Error(e.Error))
				}
			default:
				c.logger.Debug("received unknown event", zap.String("type", fmt.Sprintf("%T", e)))
			}
		}
	}
}

func toMessage(msg *kafka.Message) *Message {
	message := &Message{
		Value:     msg.Value,
		Key:       msg.Key,
		Timestamp: msg.Timestamp,
		TopicPartition: TopicPartition{
			Topic:     msg.TopicPartition.Topic,
			Partition: msg.TopicPartition.Partition,
			Offset:    Offset(msg.TopicPartition.Offset),
		},
		Headers: make([]Header, len(msg.Headers)),
	}
	for i, header := range msg.Headers {
		message.Headers[i] = Header{Key: header.Key, Value: header.Value}
	}
	return message
}

func (c *consumeInstance) handleMessage(ctx context.Context, msg *kafka.Message, handler ConsumerMsgHandler) error {
	start := time.Now()

	var runErr error
	for i := 1; i <= c.config.MaxRetries; i++ {
		if runErr = handler(ctx, toMessage(msg)); runErr == nil {
			break
		}
	}
	if runErr != nil {
		return runErr
	}

	if !c.config.EnableAutoCommit {
		if _, err := c.c.CommitMessage(msg); err != nil {
			return ErrCommit(err)
		}
	}

	c.logger.Debug("message processed",
		zap.String("topic", *msg.TopicPartition.Topic),
		zap.Int32("partition", msg.TopicPartition.Partition),
		zap.Int64("offset", int64(msg.TopicPartition.Offset)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
