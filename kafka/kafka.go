// Package kafka consumes a key-value change feed and applies it to a
// store.
//
// The system of record publishes set/delete messages to a topic; Feed
// subscribes and replays them into a store.Store. This package is
// consume-only: nothing in the module produces to Kafka.
package kafka

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Message is a consumed Kafka message.
type Message struct {
	Value          []byte
	Key            []byte
	Timestamp      time.Time
	TopicPartition TopicPartition
	Headers        []Header
}

// GetHeader returns the value of the header named k, or nil.
func (m *Message) GetHeader(k string) []byte {
	for _, header := range m.Headers {
		if header.Key == k {
			return header.Value
		}
	}
	return nil
}

// PartitionAny accepts any partition.
const PartitionAny = kafka.PartitionAny

// TopicPartition locates a message within a topic.
type TopicPartition struct {
	Topic     *string
	Partition int32
	Offset    Offset
}

// Offset is a message offset within a partition.
type Offset int64

// Header is one Kafka message header.
type Header struct {
	Key   string
	Value []byte
}

// ConsumerMsgHandler handles a single consumed message.
type ConsumerMsgHandler func(ctx context.Context, msg *Message) error

// Consumer is the Kafka consumer contract.
type Consumer interface {
	Start(ctx context.Context, handler ConsumerMsgHandler) error
	Close() error
}
