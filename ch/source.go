package ch

import (
	"context"
	"fmt"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// KVSource loads a ClickHouse key/value table into a map. Its Load
// method matches store.LoadFunc, so it plugs straight into a
// store.Syncer.
type KVSource struct {
	logger logger.Logger
	client Client
	query  string
}

// NewKVSource creates a source reading cfg's table through client.
func NewKVSource(log logger.Logger, client Client, cfg *SourceConfig) (*KVSource, error) {
	if cfg == nil {
		cfg = DefaultSourceConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrInvalidConfig("client is required")
	}

	return &KVSource{
		logger: log,
		client: client,
		query: fmt.Sprintf("SELECT %s, %s FROM %s",
			cfg.KeyColumn, cfg.ValueColumn, cfg.Table),
	}, nil
}

// Load reads every row from the table. Rows with empty keys are skipped
// and counted; a later row for the same key overwrites an earlier one.
func (s *KVSource) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.client.Query(ctx, s.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]string)
	skipped := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, ErrQuery(err)
		}
		if key == "" {
			skipped++
			continue
		}
		entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, ErrQuery(err)
	}

	if skipped > 0 {
		s.logger.Warn("skipped rows with empty keys",
			zap.Int("skipped", skipped),
		)
	}
	s.logger.Debug("loaded key/value rows", zap.Int("entries", len(entries)))
	return entries, nil
}
