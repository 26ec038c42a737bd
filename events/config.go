package events

import "time"

// Config holds configuration for a Recorder.
type Config struct {
	// Name identifies the recorder in log entries (required)
	Name string `mapstructure:"name"`
	// FlushInterval is how often buffered events are handed to the sink
	// default: 1 * time.Second
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	// FlushSize hands a batch to the sink early once it reaches this size
	// default: 256
	FlushSize int `mapstructure:"flush_size"`
}

// DefaultConfig returns the default Recorder configuration.
// Note: Name has no default and must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		FlushInterval: time.Second,
		FlushSize:     256,
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultConfig.
func (c *Config) MergeDefaults() *Config {
	out := *c
	defaults := DefaultConfig()
	if out.FlushInterval == 0 {
		out.FlushInterval = defaults.FlushInterval
	}
	if out.FlushSize == 0 {
		out.FlushSize = defaults.FlushSize
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrInvalidConfig("name is required")
	}
	if c.FlushInterval <= 0 {
		return ErrInvalidConfig("flush_interval must be greater than 0")
	}
	if c.FlushSize <= 0 {
		return ErrInvalidConfig("flush_size must be greater than 0")
	}
	return nil
}
