package ch

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Config holds the ClickHouse connection settings.
type Config struct {
	// Hosts of the cluster (required)
	Hosts []string `mapstructure:"hosts"`
	// Database to use
	// default: "default"
	Database string `mapstructure:"database"`
	// Username for authentication (required)
	Username string `mapstructure:"username"`
	// Password for authentication (required)
	Password string `mapstructure:"password"`
	// DialTimeout for establishing connections
	// default: 10 * time.Second
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	// Debug enables the driver's debug output
	Debug bool `mapstructure:"debug"`
	// Settings passed through to the server
	Settings clickhouse.Settings `mapstructure:"settings"`
}

// DefaultConfig returns the default ClickHouse configuration.
func DefaultConfig() *Config {
	return &Config{
		Database:    "default",
		DialTimeout: 10 * time.Second,
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultConfig.
func (c *Config) MergeDefaults() *Config {
	out := *c
	defaults := DefaultConfig()
	if out.Database == "" {
		out.Database = defaults.Database
	}
	if out.DialTimeout == 0 {
		out.DialTimeout = defaults.DialTimeout
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return ErrInvalidConfig("hosts are required")
	}
	if c.Username == "" {
		return ErrInvalidConfig("username is required")
	}
	if c.Password == "" {
		return ErrInvalidConfig("password is required")
	}
	return nil
}

// identifierPattern restricts table and column names to plain
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
