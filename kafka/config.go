package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// ConsumerConfig holds the consumer settings.
type ConsumerConfig struct {
	// Brokers of the cluster (required)
	Brokers []string `mapstructure:"brokers"`
	// GroupID of the consumer group (required)
	GroupID string `mapstructure:"group_id"`
	// Topics to subscribe to (required)
	Topics []string `mapstructure:"topics"`

	// MaxRetries per message before giving up
	// default: 3
	MaxRetries int `mapstructure:"max_retries"`

	// InstanceNum of parallel consumer instances
	// default: 1
	InstanceNum int `mapstructure:"instance_num"`

	// AutoOffsetReset policy when no offset is committed:
	// "earliest" or "latest"
	// default: "latest"
	AutoOffsetReset string `mapstructure:"auto_offset_reset"`

	// EnableAutoCommit turns on broker-side offset auto commit.
	// When false, offsets are committed per handled message.
	// default: false
	EnableAutoCommit bool `mapstructure:"enable_auto_commit"`

	// AutoCommitInterval when EnableAutoCommit is true
	// default: 5s
	AutoCommitInterval time.Duration `mapstructure:"auto_commit_interval"`

	// SessionTimeout for group membership
	// default: 30s
	SessionTimeout time.Duration `mapstructure:"session_timeout"`

	// MaxPollInterval between two polls before the broker evicts us
	// default: 120s
	MaxPollInterval time.Duration `mapstructure:"max_poll_interval"`

	// SecurityProtocol: only "PLAINTEXT" is supported for now
	// default: "PLAINTEXT"
	SecurityProtocol string `mapstructure:"security_protocol"`

	// Debug enables the driver's consumer debug logs
	Debug bool `mapstructure:"debug"`
}

// DefaultConsumerConfig returns the default consumer configuration.
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		MaxRetries:         3,
		InstanceNum:        1,
		AutoOffsetReset:    "latest",
		EnableAutoCommit:   false,
		AutoCommitInterval: 5 * time.Second,
		SessionTimeout:     30 * time.Second,
		MaxPollInterval:    120 * time.Second,
		SecurityProtocol:   "PLAINTEXT",
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultConsumerConfig.
func (c *ConsumerConfig) MergeDefaults() *ConsumerConfig {
	out := *c
	defaults := DefaultConsumerConfig()
	if out.MaxRetries == 0 {
		out.MaxRetries = defaults.MaxRetries
	}
	if out.InstanceNum == 0 {
		out.InstanceNum = defaults.InstanceNum
	}
	if out.AutoOffsetReset == "" {
		out.AutoOffsetReset = defaults.AutoOffsetReset
	}
	if out.AutoCommitInterval == 0 {
		out.AutoCommitInterval = defaults.AutoCommitInterval
	}
	if out.SessionTimeout == 0 {
		out.SessionTimeout = defaults.SessionTimeout
	}
	if out.MaxPollInterval == 0 {
		out.MaxPollInterval = defaults.MaxPollInterval
	}
	if out.SecurityProtocol == "" {
		out.SecurityProtocol = defaults.SecurityProtocol
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *ConsumerConfig) Validate() error {
	if len(c.Brokers) == 0 {
		return ErrInvalidConfig("brokers are required")
	}
	if c.GroupID == "" {
		return ErrInvalidConfig("group_id is required")
	}
	if len(c.Topics) == 0 {
		return ErrInvalidConfig("topics are required")
	}
	if c.AutoOffsetReset != "earliest" && c.AutoOffsetReset != "latest" {
		return ErrInvalidConfig(
			fmt.Sprintf("invalid auto_offset_reset: %s, must be 'earliest' or 'latest'", c.AutoOffsetReset),
		)
	}
	if c.EnableAutoCommit && c.AutoCommitInterval <= 0 {
		return ErrInvalidConfig("auto_commit_interval must be greater than 0 when enable_auto_commit is true")
	}
	if c.SessionTimeout <= 0 {
		return ErrInvalidConfig("session_timeout must be greater than 0")
	}
	if c.MaxPollInterval <= 0 {
		return ErrInvalidConfig("max_poll_interval must be greater than 0")
	}
	return nil
}

// BuildConfigMap translates the config into the driver's map.
func (c *ConsumerConfig) BuildConfigMap() *kafka.ConfigMap {
	configMap := &kafka.ConfigMap{
		"bootstrap.servers":    strings.Join(c.Brokers, ","),
		"group.id":             c.GroupID,
		"auto.offset.reset":    strings.ToLower(c.AutoOffsetReset),
		"enable.auto.commit":   c.EnableAutoCommit,
		"session.timeout.ms":   int(c.SessionTimeout.Milliseconds()),
		"max.poll.interval.ms": int(c.MaxPollInterval.Milliseconds()),
		"security.protocol":    c.SecurityProtocol,
	}

	if c.EnableAutoCommit {
		_ = configMap.SetKey("auto.commit.interval.ms", int(c.AutoCommitInterval.Milliseconds()))
	}
	if c.Debug {
		_ = configMap.SetKey("debug", "consumer,cgrp,topic,fetch")
	}

	return configMap
}
