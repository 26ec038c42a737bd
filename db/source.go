package db

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// identifierPattern restricts table and column names to plain SQL
// identifiers; they are interpolated into the query, not bound.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SourceConfig names the table and columns a KVSource reads.
type SourceConfig struct {
	// Table holding the key/value rows (required)
	Table string `mapstructure:"table"`
	// KeyColumn with the keys
	// default: "k"
	KeyColumn string `mapstructure:"key_column"`
	// ValueColumn with the values
	// default: "v"
	ValueColumn string `mapstructure:"value_column"`
}

// DefaultSourceConfig returns the default source configuration.
// Note: Table has no default and must be set by the caller.
func DefaultSourceConfig() *SourceConfig {
	return &SourceConfig{
		KeyColumn:   "k",
		ValueColumn: "v",
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultSourceConfig.
func (c *SourceConfig) MergeDefaults() *SourceConfig {
	out := *c
	defaults := DefaultSourceConfig()
	if out.KeyColumn == "" {
		out.KeyColumn = defaults.KeyColumn
	}
	if out.ValueColumn == "" {
		out.ValueColumn = defaults.ValueColumn
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *SourceConfig) Validate() error {
	for _, ident := range []string{c.Table, c.KeyColumn, c.ValueColumn} {
		if !identifierPattern.MatchString(ident) {
			return ErrInvalidConfig(fmt.Sprintf("invalid identifier: %q", ident))
		}
	}
	return nil
}

// KVSource loads a MySQL key/value table into a map. Its Load method
// matches store.LoadFunc, so it plugs straight into a store.Syncer.
type KVSource struct {
	logger   logger.Logger
	database Database
	query    string
}

// NewKVSource creates a source reading cfg's table through database.
func NewKVSource(log logger.Logger, database Database, cfg *SourceConfig) (*KVSource, error) {
	if cfg == nil {
		cfg = DefaultSourceConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if database == nil {
		return nil, ErrInvalidConfig("database is required")
	}

	return &KVSource{
		logger:   log,
		database: database,
		query: fmt.Sprintf("SELECT `%s`, `%s` FROM `%s`",
			cfg.KeyColumn, cfg.ValueColumn, cfg.Table),
	}, nil
}

// Load reads every row from the table. Rows with empty keys are skipped
// and counted; a later row for the same key overwrites an earlier one.
func (s *KVSource) Load(ctx context.Context) (map[string]string, error) {
	gdb, err := s.database.DB()
	if err != nil {
		return nil, err
	}

	rows, err := gdb.WithContext(ctx).Raw(s.query).Rows()
	if err != nil {
		return nil, ErrQuery(err)
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
