package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// validateCluster verifies the brokers are reachable before consumer
// instances are created.
func validateCluster(log logger.Logger, brokers []string) error {
	configMap := &kafka.ConfigMap{
		"bootstrap.servers":  strings.Join(brokers, ","),
		"request.timeout.ms": 10000,
	}

	const maxRetries = 3
	retryDelay := 2 * time.Second

	var adminClient *kafka.AdminClient
	var err error
	for i := 0; i < maxRetries; i++ {
		adminClient, err = kafka.NewAdminClient(configMap)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.Warn("failed to create admin client, retrying",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("max_retries", maxRetries),
			)
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("kafka: failed to create admin client after %d retries: %w", maxRetries, err)
	}
	defer adminClient.Close()

	if _, err = adminClient.GetMetadata(nil, false, int(10*time.Second/time.Microsecond)); err != nil {
		return fmt.Errorf("kafka: failed to connect to brokers: %w", err)
	}

	log.Info("broker connection validated", zap.Strings("brokers", brokers))
	return nil
}
