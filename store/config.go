package store

import "time"

// Config holds configuration for a MemoryStore.
type Config struct {
	// Name identifies the store in log entries (required)
	Name string `mapstructure:"name"`
	// InitialCapacity is the initial size hint for the mapping
	// default: 64
	InitialCapacity int `mapstructure:"initial_capacity"`
}

// DefaultConfig returns the default MemoryStore configuration.
// Note: Name has no default and must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		InitialCapacity: 64,
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultConfig.
func (c *Config) MergeDefaults() *Config {
	out := *c
	if out.InitialCapacity == 0 {
		out.InitialCapacity = DefaultConfig().InitialCapacity
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrInvalidName(c.Name)
	}
	if c.InitialCapacity < 0 {
		return ErrInvalidCapacity(c.InitialCapacity)
	}
	return nil
}

// SyncerConfig holds configuration for a Syncer.
type SyncerConfig struct {
	// Name identifies the syncer in log entries (required)
	Name string `mapstructure:"name"`
	// Interval between periodic refreshes
	// default: 5 * time.Minute
	Interval time.Duration `mapstructure:"interval"`
	// Timeout for each load attempt
	// default: 30 * time.Second
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxRetries is the number of load attempts per refresh
	// default: 3
	MaxRetries int `mapstructure:"max_retries"`
}

// DefaultSyncerConfig returns the default Syncer configuration.
// Note: Name has no default and must be set by the caller.
func DefaultSyncerConfig() *SyncerConfig {
	return &SyncerConfig{
		Interval:   5 * time.Minute,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultSyncerConfig.
func (c *SyncerConfig) MergeDefaults() *SyncerConfig {
	out := *c
	defaults := DefaultSyncerConfig()
	if out.Interval == 0 {
		out.Interval = defaults.Interval
	}
	if out.Timeout == 0 {
		out.Timeout = defaults.Timeout
	}
	if out.MaxRetries == 0 {
		out.MaxRetries = defaults.MaxRetries
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *SyncerConfig) Validate() error {
	if c.Name == "" {
		return ErrInvalidName(c.Name)
	}
	if c.Interval <= 0 {
		return ErrInvalidInterval(c.Interval)
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout(c.Timeout)
	}
	if c.MaxRetries < 1 {
		return ErrInvalidMaxRetries(c.MaxRetries)
	}
	return nil
}
