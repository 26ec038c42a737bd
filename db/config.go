package db

import (
	"fmt"
	"slices"
	"time"
)

// Config holds the MySQL connection settings.
type Config struct {
	// Host of the database
	Host string `mapstructure:"host"`
	// Port of the database
	// default: 3306
	Port int `mapstructure:"port"`
	// User of the database
	User string `mapstructure:"user"`
	// Password of the database
	Password string `mapstructure:"password"`
	// Database name
	Database string `mapstructure:"database"`
	// MaxOpenConns for the connection pool
	// default: 25
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// MaxIdleConns for the connection pool
	// default: 10
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// ConnMaxLifetime for pooled connections
	// default: 1800 * time.Second
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// ConnMaxIdleTime for pooled connections
	// default: 600 * time.Second
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	// LogLevel for gorm: silent, error, warn, info
	// default: "warn"
	LogLevel string `mapstructure:"log_level"`
	// SlowThreshold for slow-query warnings
	// default: 1 * time.Second
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
	// Charset of the connection
	// default: "utf8mb4"
	Charset string `mapstructure:"charset"`
	// Loc for time parsing
	// default: "Local"
	Loc string `mapstructure:"loc"`
}

// DSN builds the MySQL data source name.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=%s",
		c.User, c.Password, c.Host, c.Port, c.Database,
		c.Charset, c.Loc,
	)
}

// DefaultConfig returns the default MySQL configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:            3306,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1800 * time.Second,
		ConnMaxIdleTime: 600 * time.Second,
		LogLevel:        "warn",
		SlowThreshold:   1 * time.Second,
		Charset:         "utf8mb4",
		Loc:             "Local",
	}
}

// MergeDefaults returns a copy of c with zero-valued fields filled in
// from DefaultConfig.
func (c *Config) MergeDefaults() *Config {
	out := *c
	defaults := DefaultConfig()
	if out.Port == 0 {
		out.Port = defaults.Port
	}
	if out.MaxOpenConns == 0 {
		out.MaxOpenConns = defaults.MaxOpenConns
	}
	if out.MaxIdleConns == 0 {
		out.MaxIdleConns = defaults.MaxIdleConns
	}
	if out.ConnMaxLifetime == 0 {
		out.ConnMaxLifetime = defaults.ConnMaxLifetime
	}
	if out.ConnMaxIdleTime == 0 {
		out.ConnMaxIdleTime = defaults.ConnMaxIdleTime
	}
	if out.LogLevel == "" {
		out.LogLevel = defaults.LogLevel
	}
	if out.SlowThreshold == 0 {
		out.SlowThreshold = defaults.SlowThreshold
	}
	if out.Charset == "" {
		out.Charset = defaults.Charset
	}
	if out.Loc == "" {
		out.Loc = defaults.Loc
	}
	return &out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrInvalidConfig("host is required")
	}
	if c.Port <= 0 {
		return ErrInvalidConfig("port is required")
	}
	if c.User == "" {
		return ErrInvalidConfig("user is required")
	}
	if c.Password == "" {
		return ErrInvalidConfig("password is required")
	}
	if c.Database == "" {
		return ErrInvalidConfig("database is required")
	}
	if !slices.Contains([]string{"silent", "error", "warn", "info"}, c.LogLevel) {
		return ErrInvalidConfig(fmt.Sprintf("invalid log_level: %s", c.LogLevel))
	}
	return nil
}
