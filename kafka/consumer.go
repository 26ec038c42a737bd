package kafka

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dailyyoga/memkit/logger"
)

type defaultConsumer struct {
	instances []*consumeInstance

	closed atomic.Bool
}

// NewConsumer creates a consumer with cfg.InstanceNum parallel
// instances. The cluster connection is validated before any instance is
// created.
func NewConsumer(log logger.Logger, cfg *ConsumerConfig) (Consumer, error) {
	if cfg == nil {
		cfg = DefaultConsumerConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateCluster(log, cfg.Brokers); err != nil {
		return nil, err
	}

	instances := make([]*consumeInstance, cfg.InstanceNum)
	for i := 0; i < cfg.InstanceNum; i++ {
		name := fmt.Sprintf("%s-instance-%d", cfg.GroupID, i+1)
		instance, err := newConsumeInstance(name, cfg, log)
		if err != nil {
			return nil, err
		}
		instances[i] = instance
	}

	return &defaultConsumer{instances: instances}, nil
}

func (c *defaultConsumer) Start(ctx context.Context, handler ConsumerMsgHandler) error {
	if len(c.instances) == 0 {
		return ErrNoConsumerInstances
	}
	for _, instance := range c.instances {
		if err := instance.Start(ctx, handler); err != nil {
			return err
		}
	}
	return nil
}

func (c *defaultConsumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if len(c.instances) == 0 {
		return ErrNoConsumerInstances
	}
	for _, instance := range c.instances {
		if err := instance.Close(); err != nil {
			return err
		}
	}
	return nil
}
